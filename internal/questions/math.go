package questions

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

// MathLevel bounds the operands generated for one difficulty step.
type MathLevel struct {
	MaxOperand int
	Ops        []Operator
}

// DefaultMathLevels get harder every round. Rounds past the last level
// stay on the last level.
var DefaultMathLevels = []MathLevel{
	{MaxOperand: 10, Ops: []Operator{OpAdd, OpSub}},
	{MaxOperand: 20, Ops: []Operator{OpAdd, OpSub, OpMul}},
	{MaxOperand: 50, Ops: []Operator{OpAdd, OpSub, OpMul}},
	{MaxOperand: 12, Ops: []Operator{OpMul, OpDiv}},
	{MaxOperand: 100, Ops: []Operator{OpAdd, OpSub, OpMul, OpDiv}},
}

// MathSource generates arithmetic questions. The engine asks each seat for
// exactly one question per round, so the number of requests a seat has made
// is its round number and picks the difficulty level.
type MathSource struct {
	mu       sync.Mutex
	category string
	levels   []MathLevel
	rng      *rand.Rand
	nextID   int
	requests [2]int
}

// NewMathSource creates a generator. A nil levels slice uses DefaultMathLevels.
func NewMathSource(category string, levels []MathLevel, seed int64) *MathSource {
	if len(levels) == 0 {
		levels = DefaultMathLevels
	}
	return &MathSource{
		category: category,
		levels:   levels,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Next implements core.QuestionSource.
func (s *MathSource) Next(p core.PlayerIndex) (core.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := 0
	if p.Valid() {
		level = min(s.requests[p], len(s.levels)-1)
		s.requests[p]++
	}
	lv := s.levels[level]
	limit := max(lv.MaxOperand, 2)

	ops := lv.Ops
	if len(ops) == 0 {
		ops = []Operator{OpAdd}
	}
	op := ops[s.rng.Intn(len(ops))]
	a := 1 + s.rng.Intn(limit)
	b := 1 + s.rng.Intn(limit)
	switch op {
	case OpSub:
		// Keep results non-negative.
		if b > a {
			a, b = b, a
		}
	case OpMul:
		b = 1 + s.rng.Intn(min(limit, 12))
	case OpDiv:
		// Build an exact division from a product.
		b = 1 + s.rng.Intn(min(limit, 12))
		a = b * (1 + s.rng.Intn(min(limit, 12)))
	}

	s.nextID++
	result := op.Apply(a, b)
	return NewMath(s.nextID, s.category, a, op, b, s.options(result)), nil
}

// options returns the result and three distinct nearby non-negative values, shuffled.
func (s *MathSource) options(result int) []string {
	values := []int{result}
	seen := map[int]bool{result: true}
	spread := max(3, result/5)
	for len(values) < 4 {
		v := result + s.rng.Intn(2*spread+1) - spread
		if v < 0 || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	s.rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
