package questions

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// BankSource draws questions from a bank without repeating any question
// until every question has been used, then starts over.
// The used set is shared by both seats, so the two players never get the
// same question while unused ones remain.
type BankSource struct {
	mu   sync.Mutex
	bank Bank
	rng  *rand.Rand
	used map[int]bool
}

// NewBankSource creates a source over a validated bank.
// A zero seed still yields a deterministic sequence; callers wanting
// variety pass a time-based seed.
func NewBankSource(bank Bank, seed int64) (*BankSource, error) {
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return &BankSource{
		bank: bank,
		rng:  rand.New(rand.NewSource(seed)),
		used: make(map[int]bool, len(bank.Entries)),
	}, nil
}

// Next implements core.QuestionSource.
func (s *BankSource) Next(core.PlayerIndex) (core.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.used) >= len(s.bank.Entries) {
		clear(s.used)
	}

	unused := make([]int, 0, len(s.bank.Entries)-len(s.used))
	for i, e := range s.bank.Entries {
		if !s.used[e.ID] {
			unused = append(unused, i)
		}
	}
	e := s.bank.Entries[unused[s.rng.Intn(len(unused))]]
	s.used[e.ID] = true

	options := append([]string{e.Answer}, e.Wrong...)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	if s.bank.Kind == KindColor {
		return NewColor(e.ID, s.bank.Category, e.Hex, options, e.Answer, e.Explanation), nil
	}
	return NewChoice(e.ID, s.bank.Category, e.Prompt, options, e.Answer, e.Explanation), nil
}

// Remaining returns how many questions are left before the bank starts over.
func (s *BankSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bank.Entries) - len(s.used)
}

// Used returns the IDs drawn since the last reset, in ascending order.
func (s *BankSource) Used() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.used))
	for id := range s.used {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
