package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/engine"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	HandshakeTimeout: timeout,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// session is one websocket connection and the engine it drives.
type session struct {
	conn     *websocket.Conn
	eng      *engine.Engine
	category registry.Category
	cfg      engine.Config
	delay    time.Duration
	avatars  []string
	logger   *log.Logger

	send chan any
	done chan struct{}

	mu      sync.Mutex
	pending uint64 // Turn whose selection is on the feedback panel, 0 = none
	timer   *time.Timer
}

// serveWS builds the engine for the requested category before upgrading,
// so an unknown category is a plain 404.
func (s *Server) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cat, err := registry.Create(ps.ByName("category"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		ecfg, err := s.cfg.Trivia.EngineConfig(cat.ID())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		seed := s.cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		src, err := cat.NewSource(seed)
		if err != nil {
			s.logger.Error("could not create question source", "category", cat.ID(), "error", err)
			http.Error(w, "could not load questions", http.StatusInternalServerError)
			return
		}

		id := uuid.NewString()
		logger := s.logger.With("session", id, "category", cat.ID())
		opts := append([]engine.Option{engine.WithLogger(logger)}, s.cfg.EngineOptions...)
		eng, err := engine.New(ecfg, src, opts...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade failed", "remote", realIP(r), "error", err)
			eng.Close()
			return
		}

		sess := &session{
			conn:     conn,
			eng:      eng,
			category: cat,
			cfg:      ecfg,
			delay:    s.cfg.Trivia.RevealDelay(),
			avatars:  s.cfg.Trivia.AvatarChoices(),
			logger:   logger,
			send:     make(chan any, sendBuffer),
			done:     make(chan struct{}),
		}

		start := time.Now()
		logger.Info("session started", "remote", realIP(r))
		sess.run(s.closing)
		logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// run blocks until the socket closes or the server shuts down.
func (c *session) run(closing <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.eng.Start(ctx)
	snaps, unsubscribe := c.eng.Subscribe(sendBuffer)
	defer func() {
		close(c.done)
		c.stopReveal()
		unsubscribe()
		c.eng.Close()
		_ = c.conn.Close()
	}()

	go c.writePump()
	go c.forward(snaps)
	go func() {
		select {
		case <-closing:
			_ = c.conn.Close()
		case <-c.done:
		}
	}()

	c.push(HelloMessage{
		Type:          msgHello,
		Category:      c.category.ID(),
		Title:         c.category.Title(),
		Rounds:        c.cfg.Rounds,
		TimePerTurn:   c.cfg.TimePerTurn,
		RevealDelayMS: int(c.delay / time.Millisecond),
		Avatars:       c.avatars,
		MaxNameLength: core.MaxNameLength,
	})
	c.push(stateMessage(c.eng.Snapshot()))

	c.readPump(ctx)
}

func (c *session) readPump(ctx context.Context) {
	_ = c.conn.SetReadDeadline(time.Time{})
	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}

		var err error
		switch msg.Type {
		case msgSetup:
			err = c.setup(ctx, msg.Players)
		case msgAnswer:
			err = c.answer(ctx, core.PlayerIndex(msg.Player), msg.Turn, msg.Option)
		case msgForfeit:
			err = c.eng.Forfeit(ctx, core.PlayerIndex(msg.Player))
		default:
			err = fmt.Errorf("unknown message type %q", msg.Type)
		}
		if err != nil {
			c.push(errorMessage(err))
		}
	}
}

func (c *session) writePump() {
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				_ = c.conn.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// forward relays every engine snapshot until the subscription closes.
func (c *session) forward(snaps <-chan engine.Snapshot) {
	for snap := range snaps {
		c.push(stateMessage(snap))
	}
}

func (c *session) push(msg any) {
	select {
	case c.send <- msg:
	case <-c.done:
	}
}

func (c *session) setup(ctx context.Context, seats [2]PlayerSeat) error {
	var players [2]engine.PlayerInfo
	for i, seat := range seats {
		name := strings.TrimSpace(seat.Name)
		switch {
		case name == "":
			return fmt.Errorf("player %d needs a name", i+1)
		case utf8.RuneCountInString(name) > core.MaxNameLength:
			return fmt.Errorf("player %d: name is longer than %d characters", i+1, core.MaxNameLength)
		}
		players[i] = engine.PlayerInfo{Name: name, Avatar: seat.Avatar}
	}

	c.stopReveal()
	return c.eng.InitializePlayers(ctx, players[0], players[1])
}

// answer shows the feedback for a selection and hands it to the engine once
// the reveal delay has passed. The clock keeps running meanwhile, so a
// timeout can still claim the turn and the delayed answer then comes back
// as stale.
func (c *session) answer(ctx context.Context, player core.PlayerIndex, turn uint64, option string) error {
	if c.delay <= 0 {
		q := c.eng.Snapshot().State.ActiveState().CurrentQuestion
		out, err := c.eng.Choose(ctx, player, turn, option)
		if err != nil {
			return err
		}
		c.push(revealMessage(q, player, turn, option, out.Correct, out.Points))
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.eng.Snapshot().State
	if err := acceptable(st, player, turn); err != nil {
		return err
	}
	if c.pending == turn {
		return engine.ErrAlreadyAnswered
	}

	ps := st.PlayerStates[player]
	q := ps.CurrentQuestion
	a := engine.Answer{Player: player, Turn: turn}
	points := 0
	if q != nil && q.Check(option) {
		a.Correct = true
		a.TimeBonus = engine.TimeBonus(ps.TimeLeft, c.cfg.TimePerTurn, c.cfg.MaxTimeBonus)
		points = c.cfg.BasePoints + a.TimeBonus
	}

	c.pending = turn
	c.timer = time.AfterFunc(c.delay, func() { c.submit(ctx, a) })
	c.push(revealMessage(q, player, turn, option, a.Correct, points))
	return nil
}

func (c *session) submit(ctx context.Context, a engine.Answer) {
	_, err := c.eng.Submit(ctx, a)

	c.mu.Lock()
	if c.pending == a.Turn {
		c.pending = 0
	}
	c.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, engine.ErrStaleTurn), errors.Is(err, engine.ErrAlreadyAnswered):
		c.push(ErrorMessage{Type: msgError, Error: "That answer came too late."})
	case errors.Is(err, engine.ErrClosed), errors.Is(err, context.Canceled):
	default:
		c.logger.Warn("delayed answer failed", "player", a.Player, "turn", a.Turn, "error", err)
		c.push(errorMessage(err))
	}
}

func (c *session) stopReveal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = 0
}

// acceptable applies the engine's submission checks to a snapshot, so that
// no feedback is shown for an answer the engine would refuse.
func acceptable(st engine.GameState, player core.PlayerIndex, turn uint64) error {
	switch st.Phase {
	case engine.PhaseSetup:
		return engine.ErrNotStarted
	case engine.PhaseGameOver, engine.PhaseForfeited:
		return engine.ErrGameOver
	}
	switch {
	case !player.Valid():
		return fmt.Errorf("%w: %d", engine.ErrInvalidPlayer, int(player))
	case turn != st.Turn:
		return engine.ErrStaleTurn
	case st.PlayerStates[player].HasAnswered:
		return engine.ErrAlreadyAnswered
	case player != st.CurrentPlayerIndex:
		return engine.ErrNotYourTurn
	}
	return nil
}

func revealMessage(q core.Question, player core.PlayerIndex, turn uint64, option string, correct bool, points int) RevealMessage {
	msg := RevealMessage{
		Type:    msgReveal,
		Player:  int(player),
		Turn:    turn,
		Option:  option,
		Correct: correct,
		Points:  points,
	}
	if q != nil {
		msg.Answer = q.Answer()
		msg.Explanation = q.Explanation()
	}
	return msg
}
