// Package agent translates natural-language instructions into validated
// write operations against the habit store. Operation selection is
// delegated to a hosted model behind the IntentResolver port; everything
// the model returns is treated as untrusted input and re-validated here
// before any write.
package agent

import (
	"context"

	"habitkit/internal/domain"
)

// Operation names the model may select.
const (
	OpCreateHabit    = "createHabit"
	OpUpdateHabit    = "updateHabit"
	OpReportProgress = "reportProgress"
)

// Snapshot is the read-only context handed to the resolver: the user's
// current habits and categories.
type Snapshot struct {
	Habits     []domain.Habit
	Categories []domain.Category
}

// HabitByID returns the snapshot habit with the given id, or nil.
func (s Snapshot) HabitByID(id string) *domain.Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

// HasCategory reports whether the snapshot contains the category id.
func (s Snapshot) HasCategory(id string) bool {
	for _, c := range s.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// OperationCall is a model-selected operation with raw arguments.
type OperationCall struct {
	Name string
	Args map[string]any
}

// Resolution is the outcome of intent resolution. Exactly one of Call or
// Clarification is set.
type Resolution struct {
	Call          *OperationCall
	Clarification string
}

// IntentResolver maps a free-text instruction plus the current snapshot to
// one operation call, or to a clarifying question when the instruction is
// ambiguous. Implementations are expected to be non-deterministic; callers
// must validate everything they return.
type IntentResolver interface {
	ResolveIntent(ctx context.Context, instruction string, snap Snapshot) (*Resolution, error)
}

// TextGenerator produces free-form text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
