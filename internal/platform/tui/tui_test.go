package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trivia-duel/internal/config"
	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
	"github.com/vovakirdan/trivia-duel/internal/questions"
	"github.com/vovakirdan/trivia-duel/internal/registry"
	"github.com/vovakirdan/trivia-duel/internal/storage"
)

// stubCategory always asks the same question; option 1 is right.
type stubCategory struct{}

func (stubCategory) ID() string { return "tui-stub" }
func (stubCategory) Title() string { return "Stub" }
func (stubCategory) Description() string { return "test questions" }

func (stubCategory) NewSource(int64) (core.QuestionSource, error) {
	n := 0
	return core.SourceFunc(func(core.PlayerIndex) (core.Question, error) {
		n++
		return questions.NewChoice(n, "tui-stub", "Pick right",
			[]string{"right", "wrong", "worse", "worst"}, "right", "It says so."), nil
	}), nil
}

func init() {
	registry.Register("tui-stub", func() registry.Category { return stubCategory{} })
}

var players = [2]engine.PlayerInfo{{Name: "Alice"}, {Name: "Bob"}}

func newTestGame(t *testing.T, rounds int) (GameModel, *storage.Store) {
	t.Helper()
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := engine.DefaultConfig()
	cfg.Rounds = rounds
	cfg.TimePerTurn = 3
	m, err := NewGameModel(stubCategory{}, store, GameOptions{Engine: cfg, Players: players, Seed: 1})
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	return m, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m GameModel, msg tea.Msg) GameModel {
	next, _ := m.Update(msg)
	return next.(GameModel)
}

// tick delivers the tick the model is currently waiting for.
func tick(m GameModel) GameModel {
	return update(m, TickMsg{Turn: m.state.Turn, seq: m.tickSeq})
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Input
	}{
		{runes("1"), core.SelectOption(0)},
		{runes("4"), core.SelectOption(3)},
		{runes("5"), core.NoInput},
		{runes("f"), core.Input{Action: core.ActionForfeit, Option: -1}},
		{runes("q"), core.Input{Action: core.ActionQuit, Option: -1}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.Input{Action: core.ActionQuit, Option: -1}},
		{tea.KeyMsg{Type: tea.KeyUp}, core.Input{Action: core.ActionUp, Option: -1}},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.Input{Action: core.ActionConfirm, Option: -1}},
		{tea.KeyMsg{Type: tea.KeyEscape}, core.Input{Action: core.ActionBack, Option: -1}},
	}
	for _, tt := range tests {
		if got := km.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
		}
	}

	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, want scoreboard", got)
	}
}

func TestAnswerIsDeferredUntilReveal(t *testing.T) {
	m, _ := newTestGame(t, 2)
	turn := m.state.Turn

	m = update(m, runes("1"))
	if !m.Revealing() {
		t.Fatal("selection should open the feedback panel")
	}
	if m.state.PlayerStates[0].HasAnswered || m.state.Players[0].Score != 0 {
		t.Fatal("answer applied before the reveal finished")
	}

	// Input is disabled while the panel is up.
	m = update(m, runes("2"))
	if m.pending.option != "right" {
		t.Errorf("pending option changed to %q", m.pending.option)
	}

	// A reveal for another turn is ignored.
	m = update(m, RevealDoneMsg{Turn: turn + 5})
	if !m.Revealing() {
		t.Fatal("foreign reveal consumed the pending answer")
	}

	m = update(m, RevealDoneMsg{Turn: turn})
	if m.Revealing() {
		t.Fatal("reveal did not submit")
	}
	// Full clock: base 10 + full bonus 10.
	if got := m.state.Players[0].Score; got != 20 {
		t.Errorf("score = %d, want 20", got)
	}
	if m.state.CurrentPlayerIndex != core.Player2 {
		t.Errorf("turn did not pass to player 2")
	}
}

func TestTimeoutDuringRevealWins(t *testing.T) {
	m, _ := newTestGame(t, 1)
	turn := m.state.Turn
	m = tick(m)
	if got := m.state.PlayerStates[0].TimeLeft; got != 2 {
		t.Fatalf("time left = %d, want 2", got)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Revealing() || m.pending.option != "wrong" {
		t.Fatalf("expected pending wrong answer, got %+v", m.pending)
	}

	// The clock keeps running while the panel is up.
	m = tick(m)
	m = tick(m)
	if m.Revealing() {
		t.Fatal("timeout should discard the pending selection")
	}
	if m.state.CurrentPlayerIndex != core.Player2 || m.state.Players[0].Score != 0 {
		t.Fatalf("timeout not applied: %+v", m.state)
	}

	// The reveal for the lost turn does nothing.
	m = update(m, RevealDoneMsg{Turn: turn})
	if m.state.PlayerStates[1].HasAnswered || m.state.Players[0].Score != 0 {
		t.Error("late reveal changed the game")
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, _ := newTestGame(t, 1)
	old := m.state.Turn

	m = update(m, runes("1"))
	m = update(m, RevealDoneMsg{Turn: old})

	left := m.state.PlayerStates[1].TimeLeft
	m = update(m, TickMsg{Turn: old, seq: m.tickSeq})
	if m.state.PlayerStates[1].TimeLeft != left {
		t.Error("tick from the previous turn moved player 2's clock")
	}
}

func TestTimeoutEndsGameAndRecordsMatch(t *testing.T) {
	m, store := newTestGame(t, 1)

	m = update(m, runes("1"))
	m = update(m, RevealDoneMsg{Turn: m.state.Turn})
	for range 3 {
		m = tick(m)
	}

	if !m.state.IsGameOver {
		t.Fatal("game should be over after player 2 timed out")
	}
	res := engine.ResultOf(m.state)
	if res.Winner != core.Player1 || res.Scores != [2]int{20, 0} {
		t.Errorf("result = %+v", res)
	}

	recent, err := store.RecentMatches(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Winner() != "Alice" || recent[0].Category != "tui-stub" {
		t.Errorf("match log = %+v", recent)
	}

	// Further ticks do nothing and the match is not logged twice.
	m = tick(m)
	if n, _ := store.MatchCount(); n != 1 {
		t.Errorf("match count = %d, want 1", n)
	}
}

func TestForfeitAndRematch(t *testing.T) {
	m, store := newTestGame(t, 3)
	firstID := m.state.ID

	m = update(m, runes("f"))
	if m.state.Phase != engine.PhaseForfeited {
		t.Fatalf("phase = %v, want forfeited", m.state.Phase)
	}
	if res := engine.ResultOf(m.state); res.Winner != core.Player2 {
		t.Errorf("winner = %v, want player 2", res.Winner)
	}
	recent, _ := store.RecentMatches(1)
	if len(recent) != 1 || recent[0].EndReason != "forfeit" {
		t.Errorf("match log = %+v", recent)
	}

	// Answer keys do nothing once the game is over.
	m = update(m, runes("1"))
	if m.Revealing() {
		t.Error("selection accepted after game over")
	}

	m = update(m, runes("r"))
	if m.state.IsGameOver || m.state.ID == firstID {
		t.Errorf("rematch did not start a new game: %+v", m.state)
	}
	if m.state.Players[0].Name != "Alice" {
		t.Errorf("rematch lost the players")
	}
}

func TestSetupRequiresBothNames(t *testing.T) {
	m := NewSetupModel("Stub", []string{"A", "B", "C"}, [2]engine.PlayerInfo{}, 80)
	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(SetupModel)
	}

	step(runes("  Alice "))
	step(tea.KeyMsg{Type: tea.KeyEnter}) // next field
	step(tea.KeyMsg{Type: tea.KeyEnter}) // submit with empty second name
	if m.Done() {
		t.Fatal("setup finished without a second name")
	}
	if m.err == "" {
		t.Error("expected an error message")
	}

	step(runes("Bob"))
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Done() {
		t.Fatal("setup should be done")
	}

	got := m.Players()
	if got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Errorf("names = %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].Avatar != "A" || got[1].Avatar != "C" {
		t.Errorf("avatars = %q, %q", got[0].Avatar, got[1].Avatar)
	}
}

func TestSessionFlow(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := NewSessionModel(store, Options{
		Trivia:   config.DefaultTriviaConfig(),
		Runtime:  core.DefaultConfig(),
		Category: "tui-stub",
	})
	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}

	if m.screen != screenSetup {
		t.Fatalf("screen = %v, want setup", m.screen)
	}
	step(runes("Alice"))
	step(tea.KeyMsg{Type: tea.KeyTab})
	step(runes("Bob"))
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	step(runes("f"))
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want match log", m.screen)
	}
	if rows := m.scores.Rows(); rows != 2 {
		t.Errorf("standings rows = %d, want 2", rows)
	}

	step(runes("b"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.players[0].Name != "Alice" {
		t.Error("session forgot the last players")
	}
}

func TestUnknownCategoryFallsBackToMenu(t *testing.T) {
	m := NewSessionModel(nil, Options{Trivia: config.DefaultTriviaConfig(), Category: "nope"})
	if m.screen != screenMenu || m.menu.notice == "" {
		t.Errorf("screen = %v notice = %q", m.screen, m.menu.notice)
	}
}
