package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habitkit/internal/domain"
)

// ErrHabitNotFound indicates that the requested habit does not exist.
var ErrHabitNotFound = errors.New("habit not found")

// HabitService encapsulates habit management and progress-tracking use
// cases.
type HabitService struct {
	habits  domain.HabitRepository
	reports domain.ReportRepository
}

// NewHabitService creates a HabitService backed by the given repositories.
func NewHabitService(habits domain.HabitRepository, reports domain.ReportRepository) *HabitService {
	return &HabitService{habits: habits, reports: reports}
}

// HabitStatus is the read model for a habit: the stored definition plus the
// derived fields for the current period. Derived fields are recomputed from
// the report set on every read and never persisted.
type HabitStatus struct {
	domain.Habit
	Progress     float64 `json:"progress"`
	Target       int     `json:"target"`
	Completed    bool    `json:"completed"`
	LastReported string  `json:"lastReportedValue,omitempty"`
}

// CreateHabit validates and stores a new habit definition.
func (s *HabitService) CreateHabit(ctx context.Context, userID int64, h domain.Habit) (domain.Habit, error) {
	if h.Name == "" {
		return domain.Habit{}, errors.New("name is required")
	}
	if !h.Type.IsValid() {
		return domain.Habit{}, fmt.Errorf("invalid habit type %q", h.Type)
	}
	if !h.Frequency.IsValid() {
		return domain.Habit{}, fmt.Errorf("invalid frequency %q", h.Frequency)
	}
	if h.Goal == "" {
		return domain.Habit{}, errors.New("goal is required")
	}
	if h.Type == domain.TypeOptions && len(h.Options) == 0 {
		return domain.Habit{}, errors.New("options habit needs at least one option")
	}
	return s.habits.CreateHabit(ctx, userID, h)
}

// UpdateHabit applies a partial update to an existing habit.
func (s *HabitService) UpdateHabit(ctx context.Context, userID int64, id string, patch domain.HabitPatch) error {
	if patch.Type != nil && !patch.Type.IsValid() {
		return fmt.Errorf("invalid habit type %q", *patch.Type)
	}
	if patch.Frequency != nil && !patch.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency %q", *patch.Frequency)
	}
	if patch.Name != nil && *patch.Name == "" {
		return errors.New("name cannot be empty")
	}
	existing, err := s.habits.GetHabit(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrHabitNotFound
	}
	return s.habits.UpdateHabit(ctx, userID, id, patch)
}

// DeleteHabit removes a habit together with its report log.
func (s *HabitService) DeleteHabit(ctx context.Context, userID int64, id string) error {
	if err := s.reports.DeleteReportsForHabit(ctx, userID, id); err != nil {
		return err
	}
	return s.habits.DeleteHabit(ctx, userID, id)
}

// ListHabits returns the stored habit definitions without derived fields.
func (s *HabitService) ListHabits(ctx context.Context, userID int64) ([]domain.Habit, error) {
	return s.habits.ListHabits(ctx, userID)
}

// ListStatuses returns every habit with progress, completion, and last
// reported value computed for its current period.
func (s *HabitService) ListStatuses(ctx context.Context, userID int64) ([]HabitStatus, error) {
	habits, err := s.habits.ListHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	statuses := make([]HabitStatus, 0, len(habits))
	for _, h := range habits {
		since := domain.PeriodStart(now, h.Frequency)
		reports, err := s.reports.ListReportsSince(ctx, userID, h.ID, since)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, newStatus(h, reports))
	}
	return statuses, nil
}

// GetStatus returns a single habit with its derived fields.
func (s *HabitService) GetStatus(ctx context.Context, userID int64, id string) (*HabitStatus, error) {
	h, err := s.habits.GetHabit(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrHabitNotFound
	}
	since := domain.PeriodStart(time.Now(), h.Frequency)
	reports, err := s.reports.ListReportsSince(ctx, userID, h.ID, since)
	if err != nil {
		return nil, err
	}
	st := newStatus(*h, reports)
	return &st, nil
}

func newStatus(h domain.Habit, reports []domain.HabitReport) HabitStatus {
	p := domain.Summarize(h.Type, h.Goal, reports)
	return HabitStatus{
		Habit:        h,
		Progress:     p.Value,
		Target:       domain.GoalTarget(h.Type, h.Goal),
		Completed:    p.Completed,
		LastReported: p.LastReported,
	}
}

// RecordReport normalizes a free-form value by the habit's type and appends
// it to the habit's report log. The timestamp is assigned by the store.
func (s *HabitService) RecordReport(ctx context.Context, userID int64, habitID, value string) (domain.HabitReport, error) {
	h, err := s.habits.GetHabit(ctx, userID, habitID)
	if err != nil {
		return domain.HabitReport{}, err
	}
	if h == nil {
		return domain.HabitReport{}, ErrHabitNotFound
	}
	return s.reports.AppendReport(ctx, userID, habitID, domain.NormalizeReportValue(h.Type, value))
}

// AppendReport appends an already-typed report value.
func (s *HabitService) AppendReport(ctx context.Context, userID int64, habitID string, v domain.ReportValue) (domain.HabitReport, error) {
	return s.reports.AppendReport(ctx, userID, habitID, v)
}

// ResetPeriod deletes every report in the habit's current period so the
// user can redo the day or week. The delete is a single batched operation.
func (s *HabitService) ResetPeriod(ctx context.Context, userID int64, habitID string) error {
	h, err := s.habits.GetHabit(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if h == nil {
		return ErrHabitNotFound
	}
	since := domain.PeriodStart(time.Now(), h.Frequency)
	return s.reports.DeleteReportsSince(ctx, userID, habitID, since)
}
