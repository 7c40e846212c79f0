package web

import (
	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
)

// Client message types.
const (
	msgSetup   = "setup"
	msgAnswer  = "answer"
	msgForfeit = "forfeit"
)

// Server message types.
const (
	msgHello  = "hello"
	msgState  = "state"
	msgReveal = "reveal"
	msgError  = "error"
)

// ClientMessage is anything the browser sends. Fields are used per Type.
type ClientMessage struct {
	Type    string        `json:"type"`             // "setup", "answer", "forfeit"
	Players [2]PlayerSeat `json:"players"`          // setup
	Player  int           `json:"player"`           // answer, forfeit
	Option  string        `json:"option,omitempty"` // answer
	Turn    uint64        `json:"turn,omitempty"`   // answer
}

// PlayerSeat is one seat on the setup form.
type PlayerSeat struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// HelloMessage is sent once after the socket opens.
type HelloMessage struct {
	Type          string   `json:"type"` // "hello"
	Category      string   `json:"category"`
	Title         string   `json:"title"`
	Rounds        int      `json:"rounds"`
	TimePerTurn   int      `json:"time_per_turn"`
	RevealDelayMS int      `json:"reveal_delay_ms"`
	Avatars       []string `json:"avatars"`
	MaxNameLength int      `json:"max_name_length"`
}

// StateMessage is a snapshot as the browser sees it. Correct answers are
// never included; only the active player's question is.
type StateMessage struct {
	Type         string        `json:"type"` // "state"
	GameID       string        `json:"game_id,omitempty"`
	Phase        string        `json:"phase"`
	Round        int           `json:"round"`
	TotalRounds  int           `json:"total_rounds"`
	TimePerTurn  int           `json:"time_per_turn"`
	Turn         uint64        `json:"turn"`
	Current      int           `json:"current"`
	TimerRunning bool          `json:"timer_running"`
	Players      [2]PlayerView `json:"players"`
	Event        string        `json:"event"`
	Outcome      *OutcomeView  `json:"outcome,omitempty"`
	Result       *ResultView   `json:"result,omitempty"`
}

// PlayerView is one seat in a StateMessage.
type PlayerView struct {
	Name        string        `json:"name"`
	Avatar      string        `json:"avatar"`
	Score       int           `json:"score"`
	RoundsWon   int           `json:"rounds_won"`
	HasAnswered bool          `json:"has_answered"`
	TimeLeft    int           `json:"time_left"`
	Question    *QuestionView `json:"question,omitempty"`
}

// QuestionView is a question without its answer.
type QuestionView struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Hex      string   `json:"hex,omitempty"`
}

// OutcomeView describes the answer or timeout behind a snapshot.
type OutcomeView struct {
	Player        int  `json:"player"`
	Correct       bool `json:"correct"`
	Points        int  `json:"points"`
	TimedOut      bool `json:"timed_out"`
	RoundComplete bool `json:"round_complete"`
	RoundWinner   int  `json:"round_winner"` // -1 on a tie
}

// ResultView is set once the game has ended.
type ResultView struct {
	Reason      string `json:"reason"`
	Winner      int    `json:"winner"` // -1 on a draw
	ForfeitedBy int    `json:"forfeited_by"`
	Scores      [2]int `json:"scores"`
	RoundsWon   [2]int `json:"rounds_won"`
}

// RevealMessage is the feedback panel for a selection, sent before the
// answer reaches the engine.
type RevealMessage struct {
	Type        string `json:"type"` // "reveal"
	Player      int    `json:"player"`
	Turn        uint64 `json:"turn"`
	Option      string `json:"option"`
	Correct     bool   `json:"correct"`
	Points      int    `json:"points"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Type  string `json:"type"` // "error"
	Error string `json:"error"`
}

func errorMessage(err error) ErrorMessage {
	return ErrorMessage{Type: msgError, Error: err.Error()}
}

// stateMessage converts an engine snapshot for the browser.
func stateMessage(s engine.Snapshot) StateMessage {
	st := s.State
	msg := StateMessage{
		Type:         msgState,
		GameID:       st.ID,
		Phase:        st.Phase.String(),
		Round:        st.CurrentRound,
		TotalRounds:  st.TotalRounds,
		TimePerTurn:  st.TimePerTurn,
		Turn:         st.Turn,
		Current:      int(st.CurrentPlayerIndex),
		TimerRunning: s.TimerRunning,
		Event:        s.Event.Kind.String(),
	}

	for i := range st.Players {
		p, ps := st.Players[i], st.PlayerStates[i]
		msg.Players[i] = PlayerView{
			Name:        p.Name,
			Avatar:      p.Avatar,
			Score:       p.Score,
			RoundsWon:   p.RoundsWon,
			HasAnswered: ps.HasAnswered,
			TimeLeft:    ps.TimeLeft,
		}
	}
	if st.Phase == engine.PhaseTurnActive {
		if q := st.ActiveState().CurrentQuestion; q != nil {
			msg.Players[st.CurrentPlayerIndex].Question = questionView(q)
		}
	}

	switch s.Event.Kind {
	case engine.EventAnswered, engine.EventTimeout:
		o := s.Event.Outcome
		msg.Outcome = &OutcomeView{
			Player:        int(o.Player),
			Correct:       o.Correct,
			Points:        o.Points,
			TimedOut:      o.TimedOut,
			RoundComplete: o.RoundComplete,
			RoundWinner:   int(o.RoundWinner),
		}
	}

	if st.IsGameOver {
		msg.Result = &ResultView{
			Reason:      s.Result.Reason.String(),
			Winner:      int(s.Result.Winner),
			ForfeitedBy: int(st.ForfeitedBy),
			Scores:      s.Result.Scores,
			RoundsWon:   s.Result.RoundsWon,
		}
	}
	return msg
}

func questionView(q core.Question) *QuestionView {
	v := &QuestionView{
		ID:       q.ID(),
		Category: q.Category(),
		Prompt:   q.Prompt(),
		Options:  q.Options(),
	}
	if c, ok := q.(interface{ Hex() string }); ok {
		v.Hex = c.Hex()
	}
	return v
}
