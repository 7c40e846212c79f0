package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// EventKind names the transition that produced a snapshot.
type EventKind int

const (
	EventNone EventKind = iota
	EventInitialized
	EventAnswered
	EventTick
	EventTimeout
	EventForfeit
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventInitialized:
		return "initialized"
	case EventAnswered:
		return "answered"
	case EventTick:
		return "tick"
	case EventTimeout:
		return "timeout"
	case EventForfeit:
		return "forfeit"
	default:
		return "unknown"
	}
}

// Event describes the transition behind a snapshot.
type Event struct {
	Kind    EventKind
	Player  core.PlayerIndex
	Outcome Outcome // Set for EventAnswered and EventTimeout
}

// Snapshot is an immutable view of the game published after every transition.
type Snapshot struct {
	State        GameState
	TimerRunning bool
	Result       Result
	Event        Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and its game.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTickerFactory replaces the real per-second ticker.
func WithTickerFactory(f TickerFactory) Option {
	return func(e *Engine) {
		if f != nil {
			e.tickers = f
		}
	}
}

// WithTickInterval changes how often the turn clock ticks. Defaults to one second.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// ErrRunning is returned when Run is called on an engine that is already running.
var ErrRunning = errors.New("engine: already running")

// Engine owns one Game and its turn timer. All mutations, timer ticks
// included, are applied by the goroutine executing Run, one at a time.
// Presentation layers call the command methods from any goroutine and read
// state through Snapshot or Subscribe.
type Engine struct {
	game     *Game
	logger   *log.Logger
	tickers  TickerFactory
	interval time.Duration

	cmds      chan command
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	started   atomic.Bool

	mu   sync.RWMutex
	snap Snapshot
	subs *Broadcaster
}

type command struct {
	name  string
	apply func(*Game) (Event, error)
	reply chan reply
}

type reply struct {
	ev  Event
	err error
}

// New creates an engine in the setup phase. Call Run (or Start) before
// sending commands.
func New(cfg Config, source core.QuestionSource, opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:   log.New(io.Discard),
		tickers:  RealTickers{},
		interval: time.Second,
		cmds:     make(chan command),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		subs:     NewBroadcaster(),
	}
	for _, opt := range opts {
		opt(e)
	}

	g, err := NewGame(cfg, source, e.logger)
	if err != nil {
		return nil, err
	}
	e.game = g
	e.snap = e.snapshotOf(Event{Kind: EventNone, Player: NoPlayer})
	return e, nil
}

// Start runs the engine on a new goroutine until ctx is cancelled or Close is called.
func (e *Engine) Start(ctx context.Context) {
	go func() {
		if err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrClosed) {
			e.logger.Error("engine stopped", "error", err)
		}
	}()
}

// Run is the single writer loop. It returns when ctx is cancelled or the
// engine is closed, and always stops the turn timer on the way out.
func (e *Engine) Run(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(e.stopped)

	select {
	case <-e.done:
		return ErrClosed
	default:
	}

	var (
		ticker Ticker
		tickC  <-chan time.Time
		turn   uint64
	)
	stopTimer := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tickC = nil, nil
		}
	}
	// syncTimer keeps exactly one ticker alive while a turn is active and
	// restarts it whenever a new turn begins.
	syncTimer := func() {
		if !e.game.TimerRunning() {
			stopTimer()
			return
		}
		cur := e.game.state.Turn
		if ticker != nil && cur == turn {
			return
		}
		next := e.tickers.NewTicker(e.interval)
		if ticker != nil {
			ticker.Stop()
		}
		ticker, tickC, turn = next, next.C(), cur
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("engine context done", "game", e.game.state.ID)
			return ctx.Err()

		case <-e.done:
			return nil

		case cmd := <-e.cmds:
			ev, err := cmd.apply(e.game)
			syncTimer()
			if err == nil {
				e.publish(ev)
			} else {
				e.logger.Debug("command rejected", "game", e.game.state.ID, "command", cmd.name, "error", err)
			}
			cmd.reply <- reply{ev: ev, err: err}

		case <-tickC:
			res, err := e.game.Tick()
			if err != nil {
				// Only the timeout auto-submit can fail, and only on the
				// question source. The clock stays at zero and the next
				// tick tries again.
				e.logger.Error("timeout submit failed", "game", e.game.state.ID, "player", res.Player, "error", err)
			}
			syncTimer()
			ev := Event{Kind: EventTick, Player: res.Player}
			if res.TimedOut {
				ev = Event{Kind: EventTimeout, Player: res.Player, Outcome: res.Outcome}
			}
			e.publish(ev)
		}
	}
}

// do hands fn to the Run loop and waits for its result.
func (e *Engine) do(ctx context.Context, name string, fn func(*Game) (Event, error)) (Event, error) {
	cmd := command{name: name, apply: fn, reply: make(chan reply, 1)}
	select {
	case e.cmds <- cmd:
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case <-e.done:
		return Event{}, ErrClosed
	case <-e.stopped:
		return Event{}, ErrClosed
	}
	// The loop always replies to a command it has accepted.
	r := <-cmd.reply
	return r.ev, r.err
}

// InitializePlayers starts a new game with the given players.
func (e *Engine) InitializePlayers(ctx context.Context, p1, p2 PlayerInfo) error {
	_, err := e.do(ctx, "initialize", func(g *Game) (Event, error) {
		if err := g.Initialize(p1, p2); err != nil {
			return Event{}, err
		}
		return Event{Kind: EventInitialized, Player: core.Player1}, nil
	})
	return err
}

// HandleAnswer applies an answer for player without a turn token.
func (e *Engine) HandleAnswer(ctx context.Context, player core.PlayerIndex, correct bool, timeBonus int) (Outcome, error) {
	return e.Submit(ctx, Answer{Player: player, Correct: correct, TimeBonus: timeBonus})
}

// Submit applies an answer. Answers carrying the turn token of a turn that
// has already ended are rejected with ErrStaleTurn.
func (e *Engine) Submit(ctx context.Context, a Answer) (Outcome, error) {
	ev, err := e.do(ctx, "submit", func(g *Game) (Event, error) {
		out, err := g.Submit(a)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventAnswered, Player: a.Player, Outcome: out}, nil
	})
	return ev.Outcome, err
}

// Choose answers the active question with one of its options. Correctness
// and the time bonus are computed from the state at the moment the command
// is applied.
func (e *Engine) Choose(ctx context.Context, player core.PlayerIndex, turn uint64, option string) (Outcome, error) {
	ev, err := e.do(ctx, "choose", func(g *Game) (Event, error) {
		a := Answer{Player: player, Turn: turn}
		if player.Valid() {
			ps := g.state.PlayerStates[player]
			if q := ps.CurrentQuestion; q != nil && q.Check(option) {
				a.Correct = true
				a.TimeBonus = TimeBonus(ps.TimeLeft, g.cfg.TimePerTurn, g.cfg.MaxTimeBonus)
			}
		}
		out, err := g.Submit(a)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventAnswered, Player: player, Outcome: out}, nil
	})
	return ev.Outcome, err
}

// Forfeit ends the game in favour of the other player.
func (e *Engine) Forfeit(ctx context.Context, player core.PlayerIndex) error {
	_, err := e.do(ctx, "forfeit", func(g *Game) (Event, error) {
		if err := g.Forfeit(player); err != nil {
			return Event{}, err
		}
		return Event{Kind: EventForfeit, Player: player}, nil
	})
	return err
}

// Snapshot returns the most recently published snapshot.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// TimerRunning reports whether the turn clock is ticking.
func (e *Engine) TimerRunning() bool {
	return e.Snapshot().TimerRunning
}

// Subscribe returns a channel receiving every snapshot published from now on.
// Slow subscribers lose their oldest snapshots rather than blocking the engine.
func (e *Engine) Subscribe(buffer int) (<-chan Snapshot, func()) {
	return e.subs.Subscribe(buffer)
}

// Done is closed once Close has been called.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Close stops the engine, releases the timer and closes every subscription.
// Safe to call multiple times.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		if e.started.Load() {
			<-e.stopped
		}
		e.subs.Close()
	})
}

func (e *Engine) publish(ev Event) {
	s := e.snapshotOf(ev)
	e.mu.Lock()
	e.snap = s
	e.mu.Unlock()
	e.subs.Publish(s)
}

func (e *Engine) snapshotOf(ev Event) Snapshot {
	return Snapshot{
		State:        e.game.State(),
		TimerRunning: e.game.TimerRunning(),
		Result:       e.game.Result(),
		Event:        ev,
	}
}
