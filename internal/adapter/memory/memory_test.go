package memory

import (
	"context"
	"testing"
	"time"

	"habitkit/internal/domain"
)

func TestHabitLifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()

	h, err := db.CreateHabit(ctx, 1, domain.Habit{
		Name:      "Meditation",
		Type:      domain.TypeDuration,
		Frequency: domain.FrequencyDaily,
		Goal:      "10 minutes",
	})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if h.ID == "" {
		t.Fatal("expected an assigned id")
	}

	got, err := db.GetHabit(ctx, 1, h.ID)
	if err != nil || got == nil {
		t.Fatalf("GetHabit: %v, %v", got, err)
	}
	if got.Name != "Meditation" {
		t.Errorf("name = %q", got.Name)
	}

	// Scoped to the owning user.
	other, _ := db.GetHabit(ctx, 2, h.ID)
	if other != nil {
		t.Fatal("habit leaked across users")
	}

	goal := "20 minutes"
	if err := db.UpdateHabit(ctx, 1, h.ID, domain.HabitPatch{Goal: &goal}); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	got, _ = db.GetHabit(ctx, 1, h.ID)
	if got.Goal != "20 minutes" {
		t.Errorf("goal = %q after patch", got.Goal)
	}
	if got.Name != "Meditation" {
		t.Errorf("unpatched field changed: %q", got.Name)
	}

	if err := db.DeleteHabit(ctx, 1, h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	got, _ = db.GetHabit(ctx, 1, h.ID)
	if got != nil {
		t.Fatal("expected nil after delete")
	}
}

func TestReportAppendListDelete(t *testing.T) {
	db := New()
	ctx := context.Background()

	h, _ := db.CreateHabit(ctx, 1, domain.Habit{Name: "Water", Type: domain.TypeNumber, Frequency: domain.FrequencyDaily, Goal: "8"})

	before := time.Now().Add(-time.Second)
	r1, err := db.AppendReport(ctx, 1, h.ID, domain.AmountValue(3))
	if err != nil {
		t.Fatalf("AppendReport: %v", err)
	}
	if r1.ReportedAt.Before(before) {
		t.Fatal("timestamp must be assigned at append time")
	}
	_, _ = db.AppendReport(ctx, 1, h.ID, domain.AmountValue(5))

	reports, err := db.ListReportsSince(ctx, 1, h.ID, before)
	if err != nil {
		t.Fatalf("ListReportsSince: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ReportedAt.After(reports[1].ReportedAt) {
		t.Fatal("reports must be ordered oldest first")
	}

	// A later lower bound excludes older entries.
	reports, _ = db.ListReportsSince(ctx, 1, h.ID, time.Now().Add(time.Hour))
	if len(reports) != 0 {
		t.Fatalf("expected 0 reports past the bound, got %d", len(reports))
	}

	if err := db.DeleteReportsSince(ctx, 1, h.ID, before); err != nil {
		t.Fatalf("DeleteReportsSince: %v", err)
	}
	reports, _ = db.ListReportsSince(ctx, 1, h.ID, before)
	if len(reports) != 0 {
		t.Fatalf("expected all reports deleted, got %d", len(reports))
	}
}

func TestCategoryDeleteDoesNotCascade(t *testing.T) {
	db := New()
	ctx := context.Background()

	c, err := db.CreateCategory(ctx, 1, "Health")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	h, _ := db.CreateHabit(ctx, 1, domain.Habit{
		Name: "Gym", Type: domain.TypeBoolean, Frequency: domain.FrequencyWeekly,
		Goal: "3 times", CategoryID: c.ID,
	})

	if err := db.DeleteCategory(ctx, 1, c.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	cats, _ := db.ListCategories(ctx, 1)
	if len(cats) != 0 {
		t.Fatalf("expected category gone, got %d", len(cats))
	}
	got, _ := db.GetHabit(ctx, 1, h.ID)
	if got == nil {
		t.Fatal("habit must survive category deletion")
	}
	if got.CategoryID != c.ID {
		t.Fatal("reference is left dangling, not cleared")
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "bob", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u2, err := db.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u2 == nil || u2.ID != u.ID {
		t.Error("failed to retrieve user")
	}

	count, _ := db.CountUsers(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	err := repo.Create(ctx, 1, "token123", "agent", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	sess, err := repo.GetByToken(ctx, "token123")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserAgent != "agent" {
		t.Errorf("unexpected session: %+v", sess)
	}

	_ = repo.Create(ctx, 1, "stale", "agent", time.Now().Add(-time.Hour))
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if sess, _ := repo.GetByToken(ctx, "stale"); sess != nil {
		t.Error("expired session should be gone")
	}
	if sess, _ := repo.GetByToken(ctx, "token123"); sess == nil {
		t.Error("live session should remain")
	}

	_ = repo.Delete(ctx, "token123")
	sess, _ = repo.GetByToken(ctx, "token123")
	if sess != nil {
		t.Error("expected nil (deleted)")
	}
}
