package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

type harness struct {
	engine  *Engine
	tickers *ManualTickers
	source  *countingSource
	updates <-chan Snapshot
}

func startEngine(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{tickers: NewManualTickers(), source: &countingSource{}}

	e, err := New(cfg, h.source, WithTickerFactory(h.tickers))
	require.NoError(t, err)
	h.engine = e
	h.updates, _ = e.Subscribe(128)

	ctx, cancel := context.WithCancel(context.Background())
	e.Start(ctx)
	t.Cleanup(func() {
		e.Close()
		cancel()
	})
	return h
}

// next waits for the next published snapshot.
func (h *harness) next(t *testing.T) Snapshot {
	t.Helper()
	select {
	case s, ok := <-h.updates:
		require.True(t, ok, "subscription closed")
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

// tick fires the turn clock once and waits for the resulting snapshot.
func (h *harness) tick(t *testing.T) Snapshot {
	t.Helper()
	require.True(t, h.tickers.Tick(), "no ticker running")
	return h.next(t)
}

func TestEngineSetupSnapshot(t *testing.T) {
	h := startEngine(t, testConfig(3, 20))

	s := h.engine.Snapshot()
	assert.Equal(t, PhaseSetup, s.State.Phase)
	assert.False(t, s.TimerRunning)
	assert.False(t, h.tickers.Active())
	assert.False(t, h.tickers.Tick())
}

func TestEngineTimerCountsDownActivePlayer(t *testing.T) {
	h := startEngine(t, testConfig(3, 20))
	ctx := context.Background()

	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))
	s := h.next(t)
	assert.Equal(t, EventInitialized, s.Event.Kind)
	assert.True(t, s.TimerRunning)
	assert.True(t, h.tickers.Active())

	for want := 19; want >= 17; want-- {
		s = h.tick(t)
		assert.Equal(t, EventTick, s.Event.Kind)
		assert.Equal(t, want, s.State.PlayerStates[0].TimeLeft)
		assert.Equal(t, 20, s.State.PlayerStates[1].TimeLeft)
	}
	assert.Equal(t, 1, h.tickers.Created())
}

func TestEngineTimeoutThenChoose(t *testing.T) {
	h := startEngine(t, testConfig(1, 2))
	ctx := context.Background()

	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))
	h.next(t)
	firstTurn := h.engine.Snapshot().State.Turn

	h.tick(t)
	s := h.tick(t)
	require.Equal(t, EventTimeout, s.Event.Kind)
	assert.Equal(t, core.Player1, s.Event.Player)
	assert.Zero(t, s.Event.Outcome.Points)
	assert.Equal(t, core.Player2, s.State.CurrentPlayerIndex)
	assert.Equal(t, 2, s.State.PlayerStates[1].TimeLeft)
	assert.Equal(t, 2, h.tickers.Created(), "new turn restarts the clock")

	// A reveal for the first turn arriving late is rejected.
	_, err := h.engine.Submit(ctx, Answer{Player: core.Player1, Correct: true, Turn: firstTurn})
	assert.ErrorIs(t, err, ErrStaleTurn)

	out, err := h.engine.Choose(ctx, core.Player2, s.State.Turn, "right")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, 20, out.Points, "full clock earns the full bonus")
	assert.True(t, out.GameOver)

	s = h.next(t)
	assert.Equal(t, EventAnswered, s.Event.Kind)
	assert.True(t, s.State.IsGameOver)
	assert.False(t, s.TimerRunning)
	assert.False(t, h.tickers.Active(), "timer released on game over")
	assert.Equal(t, core.Player2, s.Result.Winner)
}

func TestEngineChooseWrongOption(t *testing.T) {
	h := startEngine(t, testConfig(2, 20))
	ctx := context.Background()
	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))

	out, err := h.engine.Choose(ctx, core.Player1, 0, "wrong")
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Zero(t, out.Points)
}

func TestEngineForfeitStopsTimer(t *testing.T) {
	h := startEngine(t, testConfig(3, 20))
	ctx := context.Background()
	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))
	require.True(t, h.tickers.Active())

	require.NoError(t, h.engine.Forfeit(ctx, core.Player2))
	assert.False(t, h.tickers.Active())

	s := h.engine.Snapshot()
	assert.Equal(t, PhaseForfeited, s.State.Phase)
	assert.True(t, s.State.IsGameOver)
	assert.Equal(t, core.Player1, s.Result.Winner)
	assert.False(t, h.engine.TimerRunning())

	assert.ErrorIs(t, h.engine.Forfeit(ctx, core.Player1), ErrGameOver)
}

func TestEngineConcurrentDoubleSubmit(t *testing.T) {
	h := startEngine(t, testConfig(3, 20))
	ctx := context.Background()
	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))

	const attempts = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.engine.HandleAnswer(ctx, core.Player1, true, 4); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 14, h.engine.Snapshot().State.Players[0].Score)
}

func TestEngineCloseReleasesEverything(t *testing.T) {
	h := startEngine(t, testConfig(3, 20))
	ctx := context.Background()
	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))
	h.next(t)

	h.engine.Close()
	h.engine.Close()

	assert.False(t, h.tickers.Active())
	_, ok := <-h.updates
	assert.False(t, ok, "subscription closed")

	_, err := h.engine.HandleAnswer(ctx, core.Player1, true, 0)
	assert.ErrorIs(t, err, ErrClosed)

	late, _ := h.engine.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}

func TestEngineContextCancel(t *testing.T) {
	tickers := NewManualTickers()
	e, err := New(testConfig(3, 20), &countingSource{}, WithTickerFactory(tickers))
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(ctx) }()

	require.NoError(t, e.InitializePlayers(context.Background(), alice, bob))
	require.True(t, tickers.Active())

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.False(t, tickers.Active())

	_, err = e.HandleAnswer(context.Background(), core.Player1, true, 0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, e.Run(context.Background()), ErrRunning)
}

func TestEngineRejectedCommandPublishesNothing(t *testing.T) {
	h := startEngine(t, testConfig(3, 20))
	ctx := context.Background()
	require.NoError(t, h.engine.InitializePlayers(ctx, alice, bob))
	h.next(t)

	_, err := h.engine.HandleAnswer(ctx, core.Player2, true, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	select {
	case s := <-h.updates:
		t.Fatalf("unexpected snapshot %v", s.Event.Kind)
	default:
	}
}

func TestEngineSourceFailureOnInitialize(t *testing.T) {
	e, err := New(testConfig(3, 20), &countingSource{failAt: 1}, WithTickerFactory(NewManualTickers()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)
	defer e.Close()

	err = e.InitializePlayers(ctx, alice, bob)
	assert.ErrorIs(t, err, ErrBadQuestion)
	assert.Equal(t, PhaseSetup, e.Snapshot().State.Phase)
}

func TestBroadcasterDropsOldest(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe(2)
	defer cancel()

	for i := 1; i <= 3; i++ {
		b.Publish(Snapshot{State: GameState{CurrentRound: i}})
	}
	assert.Equal(t, 2, (<-ch).State.CurrentRound)
	assert.Equal(t, 3, (<-ch).State.CurrentRound)

	cancel()
	cancel()
	assert.Zero(t, b.Len())
}
