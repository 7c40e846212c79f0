package all

import (
	"testing"

	"github.com/vovakirdan/trivia-duel/internal/core"
	"github.com/vovakirdan/trivia-duel/internal/registry"
)

func TestCategoriesRegistered(t *testing.T) {
	want := []string{"animals", "colors", "geography", "math", "quiz", "science"}
	for _, id := range want {
		if !registry.Exists(id) {
			t.Errorf("category %q not registered", id)
		}
	}
}

func TestCategoriesServeQuestions(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			if info.Title == "" {
				t.Error("missing title")
			}
			cat, err := registry.Create(info.ID)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			src, err := cat.NewSource(1)
			if err != nil {
				t.Fatalf("NewSource: %v", err)
			}

			// Enough draws to wrap every bank at least once.
			for i := 0; i < 40; i++ {
				q, err := src.Next(core.PlayerIndex(i % 2))
				if err != nil {
					t.Fatalf("Next: %v", err)
				}
				if q == nil || q.ID() == 0 {
					t.Fatalf("draw %d: invalid question %v", i, q)
				}
				if q.Category() != info.ID {
					t.Errorf("Category() = %q, want %q", q.Category(), info.ID)
				}
				if !q.Check(q.Answer()) {
					t.Errorf("question %d rejects its own answer", q.ID())
				}
				if len(q.Options()) < 2 {
					t.Errorf("question %d has %d options", q.ID(), len(q.Options()))
				}
			}
		})
	}
}
