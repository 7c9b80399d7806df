// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"strings"
	"time"
)

// HabitType determines how a habit's report values are interpreted and how
// its in-period reports reduce to a progress number.
type HabitType string

const (
	TypeDuration HabitType = "duration"
	TypeTime     HabitType = "time"
	TypeBoolean  HabitType = "boolean"
	TypeNumber   HabitType = "number"
	TypeOptions  HabitType = "options"
)

// IsValid reports whether t is one of the known habit types.
func (t HabitType) IsValid() bool {
	switch t {
	case TypeDuration, TypeTime, TypeBoolean, TypeNumber, TypeOptions:
		return true
	default:
		return false
	}
}

// Countable reports whether progress for this type is the number of reports
// rather than a sum of report values.
func (t HabitType) Countable() bool {
	return t == TypeBoolean || t == TypeTime || t == TypeOptions
}

// ParseHabitType parses user input to a HabitType.
func ParseHabitType(input string) (HabitType, bool) {
	t := HabitType(strings.ToLower(strings.TrimSpace(input)))
	return t, t.IsValid()
}

// Frequency determines the tracking period a habit is evaluated over.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// IsValid reports whether f is one of the known frequencies.
func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// ParseFrequency parses user input to a Frequency.
func ParseFrequency(input string) (Frequency, bool) {
	f := Frequency(strings.ToLower(strings.TrimSpace(input)))
	return f, f.IsValid()
}

// Habit is a tracked behavior definition. Progress and completion are never
// stored on the habit; they are recomputed from its reports at read time.
type Habit struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        HabitType `json:"type"`
	Frequency   Frequency `json:"frequency"`
	Goal        string    `json:"goal"`
	Icon        string    `json:"icon"`
	Options     []string  `json:"options,omitempty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HabitPatch is a partial update; nil fields are left unchanged.
type HabitPatch struct {
	Name        *string
	Description *string
	Type        *HabitType
	Frequency   *Frequency
	Goal        *string
	Icon        *string
	Options     *[]string
	CategoryID  *string
}

// HabitRepository is the port for habit persistence.
type HabitRepository interface {
	CreateHabit(ctx context.Context, userID int64, h Habit) (Habit, error)
	GetHabit(ctx context.Context, userID int64, id string) (*Habit, error)
	ListHabits(ctx context.Context, userID int64) ([]Habit, error)
	UpdateHabit(ctx context.Context, userID int64, id string, patch HabitPatch) error
	DeleteHabit(ctx context.Context, userID int64, id string) error
}
