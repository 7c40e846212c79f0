package engine

import (
	"errors"
	"sync"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

type stubQuestion struct {
	id     int
	answer string
}

func (q stubQuestion) ID() int { return q.id }
func (q stubQuestion) Category() string { return "stub" }
func (q stubQuestion) Prompt() string { return "question" }
func (q stubQuestion) Options() []string { return []string{q.answer, "wrong"} }
func (q stubQuestion) Check(a string) bool { return a == q.answer }
func (q stubQuestion) Answer() string { return q.answer }
func (q stubQuestion) Explanation() string { return "" }

// countingSource hands out questions with ids 1, 2, 3, ... and records
// which seat asked for each.
type countingSource struct {
	mu     sync.Mutex
	next   int
	calls  []core.PlayerIndex
	failAt int // Fail the n-th call (1-based). 0 never fails.
}

var errSourceDown = errors.New("source down")

func (s *countingSource) Next(p core.PlayerIndex) (core.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, p)
	if s.failAt != 0 && len(s.calls) == s.failAt {
		return nil, errSourceDown
	}
	s.next++
	return stubQuestion{id: s.next, answer: "right"}, nil
}

func (s *countingSource) Calls() []core.PlayerIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PlayerIndex(nil), s.calls...)
}

func testConfig(rounds, timePerTurn int) Config {
	cfg := DefaultConfig()
	cfg.Rounds = rounds
	cfg.TimePerTurn = timePerTurn
	return cfg
}

var (
	alice = PlayerInfo{Name: "Alice", Avatar: "fox"}
	bob   = PlayerInfo{Name: "Bob", Avatar: "owl"}
)
