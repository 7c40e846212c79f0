// Package questions provides the question variants used by the trivia
// categories and the sources that hand them to the engine.
//
// Every variant implements core.Question. Presentation layers that need the
// variant-specific fields (the swatch of a color question, the operands of a
// math question) use a type switch.
package questions

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ChoiceQuestion is a multiple-choice question with exactly one correct option.
type ChoiceQuestion struct {
	id          int
	category    string
	prompt      string
	options     []string
	answer      string
	explanation string
}

// NewChoice builds a ChoiceQuestion. options must contain answer.
func NewChoice(id int, category, prompt string, options []string, answer, explanation string) ChoiceQuestion {
	return ChoiceQuestion{
		id:          id,
		category:    category,
		prompt:      prompt,
		options:     slices.Clone(options),
		answer:      answer,
		explanation: explanation,
	}
}

func (q ChoiceQuestion) ID() int { return q.id }
func (q ChoiceQuestion) Category() string { return q.category }
func (q ChoiceQuestion) Prompt() string { return q.prompt }
func (q ChoiceQuestion) Options() []string { return slices.Clone(q.options) }
func (q ChoiceQuestion) Answer() string { return q.answer }
func (q ChoiceQuestion) Explanation() string { return q.explanation }
func (q ChoiceQuestion) Check(a string) bool { return sameAnswer(a, q.answer) }

// ColorQuestion asks for the name of a color shown as a swatch.
type ColorQuestion struct {
	ChoiceQuestion
	hex string
}

// NewColor builds a ColorQuestion. hex is a CSS hex color such as "#ff8800".
func NewColor(id int, category, hex string, options []string, answer, explanation string) ColorQuestion {
	return ColorQuestion{
		ChoiceQuestion: NewChoice(id, category, "Which color is this?", options, answer, explanation),
		hex:            hex,
	}
}

// Hex returns the swatch color.
func (q ColorQuestion) Hex() string { return q.hex }

// Operator is an arithmetic operation.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// Apply computes a op b. Division is integer division.
func (op Operator) Apply(a, b int) int {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return 0
		}
		return a / b
	default:
		return 0
	}
}

// MathQuestion is a generated arithmetic question.
type MathQuestion struct {
	id       int
	category string
	A, B     int
	Op       Operator
	options  []string
}

// NewMath builds a MathQuestion. options must contain the result.
func NewMath(id int, category string, a int, op Operator, b int, options []string) MathQuestion {
	return MathQuestion{id: id, category: category, A: a, B: b, Op: op, options: slices.Clone(options)}
}

// Result is the value of the expression.
func (q MathQuestion) Result() int { return q.Op.Apply(q.A, q.B) }

func (q MathQuestion) ID() int { return q.id }
func (q MathQuestion) Category() string { return q.category }
func (q MathQuestion) Options() []string { return slices.Clone(q.options) }
func (q MathQuestion) Answer() string { return strconv.Itoa(q.Result()) }
func (q MathQuestion) Check(a string) bool { return sameAnswer(a, q.Answer()) }

func (q MathQuestion) Prompt() string {
	return fmt.Sprintf("What is %d %s %d?", q.A, q.Op, q.B)
}

func (q MathQuestion) Explanation() string {
	return fmt.Sprintf("%d %s %d = %d", q.A, q.Op, q.B, q.Result())
}

// sameAnswer compares answers ignoring case and surrounding space.
func sameAnswer(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}
