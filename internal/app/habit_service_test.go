package app_test

import (
	"context"
	"testing"
	"time"

	"habitkit/internal/app"
	"habitkit/internal/domain"
)

type mockHabitRepo struct {
	createFn func(ctx context.Context, userID int64, h domain.Habit) (domain.Habit, error)
	getFn    func(ctx context.Context, userID int64, id string) (*domain.Habit, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.Habit, error)
	updateFn func(ctx context.Context, userID int64, id string, patch domain.HabitPatch) error
	deleteFn func(ctx context.Context, userID int64, id string) error
}

func (m *mockHabitRepo) CreateHabit(ctx context.Context, userID int64, h domain.Habit) (domain.Habit, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, h)
	}
	h.ID = "h1"
	return h, nil
}

func (m *mockHabitRepo) GetHabit(ctx context.Context, userID int64, id string) (*domain.Habit, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockHabitRepo) ListHabits(ctx context.Context, userID int64) ([]domain.Habit, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockHabitRepo) UpdateHabit(ctx context.Context, userID int64, id string, patch domain.HabitPatch) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, patch)
	}
	return nil
}

func (m *mockHabitRepo) DeleteHabit(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

type mockReportRepo struct {
	appendFn      func(ctx context.Context, userID int64, habitID string, v domain.ReportValue) (domain.HabitReport, error)
	listFn        func(ctx context.Context, userID int64, habitID string, since time.Time) ([]domain.HabitReport, error)
	deleteSinceFn func(ctx context.Context, userID int64, habitID string, since time.Time) error
	deleteAllFn   func(ctx context.Context, userID int64, habitID string) error
}

func (m *mockReportRepo) AppendReport(ctx context.Context, userID int64, habitID string, v domain.ReportValue) (domain.HabitReport, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, userID, habitID, v)
	}
	return domain.HabitReport{ID: "r1", HabitID: habitID, Value: v, ReportedAt: time.Now()}, nil
}

func (m *mockReportRepo) ListReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) ([]domain.HabitReport, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, habitID, since)
	}
	return nil, nil
}

func (m *mockReportRepo) DeleteReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) error {
	if m.deleteSinceFn != nil {
		return m.deleteSinceFn(ctx, userID, habitID, since)
	}
	return nil
}

func (m *mockReportRepo) DeleteReportsForHabit(ctx context.Context, userID int64, habitID string) error {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx, userID, habitID)
	}
	return nil
}

func validHabit() domain.Habit {
	return domain.Habit{
		Name:      "Meditation",
		Type:      domain.TypeDuration,
		Frequency: domain.FrequencyDaily,
		Goal:      "10 minutes",
	}
}

func TestCreateHabit_Validation(t *testing.T) {
	svc := app.NewHabitService(&mockHabitRepo{}, &mockReportRepo{})

	tests := []struct {
		name   string
		mutate func(*domain.Habit)
	}{
		{"missing name", func(h *domain.Habit) { h.Name = "" }},
		{"invalid type", func(h *domain.Habit) { h.Type = "streak" }},
		{"invalid frequency", func(h *domain.Habit) { h.Frequency = "monthly" }},
		{"missing goal", func(h *domain.Habit) { h.Goal = "" }},
		{"options habit without options", func(h *domain.Habit) { h.Type = domain.TypeOptions }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := validHabit()
			tc.mutate(&h)
			if _, err := svc.CreateHabit(context.Background(), 1, h); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateHabit_Success(t *testing.T) {
	svc := app.NewHabitService(&mockHabitRepo{}, &mockReportRepo{})
	created, err := svc.CreateHabit(context.Background(), 1, validHabit())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestListStatuses_ComputesDerivedFields(t *testing.T) {
	habit := validHabit()
	habit.ID = "h1"
	reports := []domain.HabitReport{
		{ID: "r1", HabitID: "h1", Value: domain.MinutesValue(6), ReportedAt: time.Now().Add(-2 * time.Minute)},
		{ID: "r2", HabitID: "h1", Value: domain.MinutesValue(5), ReportedAt: time.Now().Add(-time.Minute)},
	}

	var gotSince time.Time
	svc := app.NewHabitService(
		&mockHabitRepo{listFn: func(_ context.Context, _ int64) ([]domain.Habit, error) {
			return []domain.Habit{habit}, nil
		}},
		&mockReportRepo{listFn: func(_ context.Context, _ int64, _ string, since time.Time) ([]domain.HabitReport, error) {
			gotSince = since
			return reports, nil
		}},
	)

	statuses, err := svc.ListStatuses(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	st := statuses[0]
	if st.Progress != 11 {
		t.Errorf("progress = %v, want 11", st.Progress)
	}
	if !st.Completed {
		t.Error("11 >= 10 should be completed")
	}
	if st.Target != 10 {
		t.Errorf("target = %d, want 10", st.Target)
	}
	if st.LastReported != "5m" {
		t.Errorf("lastReported = %q, want 5m", st.LastReported)
	}

	wantSince := domain.PeriodStart(time.Now(), domain.FrequencyDaily)
	if !gotSince.Equal(wantSince) {
		t.Errorf("window start = %v, want %v", gotSince, wantSince)
	}
}

func TestRecordReport_NormalizesByHabitType(t *testing.T) {
	habit := validHabit()
	habit.ID = "h1"

	var appended domain.ReportValue
	svc := app.NewHabitService(
		&mockHabitRepo{getFn: func(_ context.Context, _ int64, id string) (*domain.Habit, error) {
			if id == "h1" {
				return &habit, nil
			}
			return nil, nil
		}},
		&mockReportRepo{appendFn: func(_ context.Context, _ int64, habitID string, v domain.ReportValue) (domain.HabitReport, error) {
			appended = v
			return domain.HabitReport{ID: "r1", HabitID: habitID, Value: v, ReportedAt: time.Now()}, nil
		}},
	)

	if _, err := svc.RecordReport(context.Background(), 1, "h1", "1h 30m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appended != domain.MinutesValue(90) {
		t.Fatalf("expected 90 minutes, got %+v", appended)
	}
}

func TestRecordReport_UnknownHabit(t *testing.T) {
	svc := app.NewHabitService(&mockHabitRepo{}, &mockReportRepo{})
	if _, err := svc.RecordReport(context.Background(), 1, "ghost", "10"); err != app.ErrHabitNotFound {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestResetPeriod_DeletesFromWindowStart(t *testing.T) {
	habit := validHabit()
	habit.ID = "h1"
	habit.Frequency = domain.FrequencyWeekly

	var gotSince time.Time
	svc := app.NewHabitService(
		&mockHabitRepo{getFn: func(_ context.Context, _ int64, _ string) (*domain.Habit, error) {
			return &habit, nil
		}},
		&mockReportRepo{deleteSinceFn: func(_ context.Context, _ int64, _ string, since time.Time) error {
			gotSince = since
			return nil
		}},
	)

	if err := svc.ResetPeriod(context.Background(), 1, "h1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.PeriodStart(time.Now(), domain.FrequencyWeekly)
	if !gotSince.Equal(want) {
		t.Fatalf("delete-since = %v, want week start %v", gotSince, want)
	}
}

func TestDeleteHabit_RemovesReportsFirst(t *testing.T) {
	var order []string
	svc := app.NewHabitService(
		&mockHabitRepo{deleteFn: func(_ context.Context, _ int64, _ string) error {
			order = append(order, "habit")
			return nil
		}},
		&mockReportRepo{deleteAllFn: func(_ context.Context, _ int64, _ string) error {
			order = append(order, "reports")
			return nil
		}},
	)

	if err := svc.DeleteHabit(context.Background(), 1, "h1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "reports" || order[1] != "habit" {
		t.Fatalf("unexpected delete order: %v", order)
	}
}

func TestUpdateHabit_Validation(t *testing.T) {
	habit := validHabit()
	habit.ID = "h1"
	svc := app.NewHabitService(
		&mockHabitRepo{getFn: func(_ context.Context, _ int64, id string) (*domain.Habit, error) {
			if id == "h1" {
				return &habit, nil
			}
			return nil, nil
		}},
		&mockReportRepo{},
	)

	bad := domain.HabitType("streak")
	if err := svc.UpdateHabit(context.Background(), 1, "h1", domain.HabitPatch{Type: &bad}); err == nil {
		t.Fatal("expected invalid type error")
	}
	if err := svc.UpdateHabit(context.Background(), 1, "ghost", domain.HabitPatch{}); err != app.ErrHabitNotFound {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
	goal := "20 minutes"
	if err := svc.UpdateHabit(context.Background(), 1, "h1", domain.HabitPatch{Goal: &goal}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
