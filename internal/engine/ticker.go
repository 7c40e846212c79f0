package engine

import (
	"sync"
	"time"
)

// Ticker delivers timer ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates the per-turn ticker. Tests substitute ManualTickers
// so that timer behaviour never depends on wall-clock time.
type TickerFactory interface {
	NewTicker(d time.Duration) Ticker
}

// RealTickers is the production TickerFactory backed by time.Ticker.
type RealTickers struct{}

// NewTicker starts a time.Ticker.
func (RealTickers) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop() { r.t.Stop() }

// ManualTickers is a TickerFactory whose tickers only fire when Tick is
// called. Only the most recently created, unstopped ticker receives ticks.
type ManualTickers struct {
	mu      sync.Mutex
	current *manualTicker
	created int
}

// NewManualTickers creates a factory with no live ticker.
func NewManualTickers() *ManualTickers {
	return &ManualTickers{}
}

// NewTicker implements TickerFactory. The duration is ignored.
func (m *ManualTickers) NewTicker(time.Duration) Ticker {
	t := &manualTicker{
		owner:   m,
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
	m.mu.Lock()
	m.current = t
	m.created++
	m.mu.Unlock()
	return t
}

// Tick delivers one tick to the live ticker and blocks until its owner has
// received it. It reports false when no ticker is running.
func (m *ManualTickers) Tick() bool {
	for {
		m.mu.Lock()
		t := m.current
		m.mu.Unlock()
		if t == nil {
			return false
		}

		select {
		case t.ch <- time.Now():
			return true
		case <-t.stopped:
			// Replaced or stopped while we waited. Look again.
		}
	}
}

// Active reports whether a ticker is currently running.
func (m *ManualTickers) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Created returns how many tickers have been handed out.
func (m *ManualTickers) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

type manualTicker struct {
	owner    *ManualTickers
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopped)
		t.owner.mu.Lock()
		if t.owner.current == t {
			t.owner.current = nil
		}
		t.owner.mu.Unlock()
	})
}
