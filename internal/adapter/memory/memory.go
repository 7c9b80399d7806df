// Package memory implements in-memory repositories for development and
// testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"habitkit/internal/domain"

	"github.com/google/uuid"
)

// DB implements every repository port in memory, guarded by one mutex.
type DB struct {
	mu         sync.Mutex
	habits     []domain.Habit
	reports    []ownedReport
	categories []domain.Category
	users      []*domain.User
	sessions   map[string]*domain.Session

	userIDCounter int64
}

type ownedReport struct {
	userID int64
	report domain.HabitReport
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{sessions: make(map[string]*domain.Session)}
}

// Ensure interfaces are met.
var _ domain.HabitRepository = (*DB)(nil)
var _ domain.ReportRepository = (*DB)(nil)
var _ domain.CategoryRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- HabitRepository ---

// CreateHabit stores a habit, assigning its id and creation time.
func (db *DB) CreateHabit(ctx context.Context, userID int64, h domain.Habit) (domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	h.ID = uuid.NewString()
	h.UserID = userID
	h.CreatedAt = time.Now().UTC()
	db.habits = append(db.habits, h)
	return h, nil
}

// GetHabit returns a habit by id, or nil if absent.
func (db *DB) GetHabit(ctx context.Context, userID int64, id string) (*domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.habits {
		if db.habits[i].UserID == userID && db.habits[i].ID == id {
			h := db.habits[i]
			return &h, nil
		}
	}
	return nil, nil
}

// ListHabits returns the user's habits in creation order.
func (db *DB) ListHabits(ctx context.Context, userID int64) ([]domain.Habit, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Habit, 0, len(db.habits))
	for _, h := range db.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

// UpdateHabit applies non-nil patch fields to a stored habit.
func (db *DB) UpdateHabit(ctx context.Context, userID int64, id string, patch domain.HabitPatch) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.habits {
		if db.habits[i].UserID != userID || db.habits[i].ID != id {
			continue
		}
		h := &db.habits[i]
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Description != nil {
			h.Description = *patch.Description
		}
		if patch.Type != nil {
			h.Type = *patch.Type
		}
		if patch.Frequency != nil {
			h.Frequency = *patch.Frequency
		}
		if patch.Goal != nil {
			h.Goal = *patch.Goal
		}
		if patch.Icon != nil {
			h.Icon = *patch.Icon
		}
		if patch.Options != nil {
			h.Options = append([]string(nil), (*patch.Options)...)
		}
		if patch.CategoryID != nil {
			h.CategoryID = *patch.CategoryID
		}
		return nil
	}
	return nil
}

// DeleteHabit removes a habit by id.
func (db *DB) DeleteHabit(ctx context.Context, userID int64, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.habits {
		if db.habits[i].UserID == userID && db.habits[i].ID == id {
			db.habits = append(db.habits[:i], db.habits[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- ReportRepository ---

// AppendReport stores a report with a server-assigned timestamp.
func (db *DB) AppendReport(ctx context.Context, userID int64, habitID string, v domain.ReportValue) (domain.HabitReport, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r := domain.HabitReport{
		ID:         uuid.NewString(),
		HabitID:    habitID,
		Value:      v,
		ReportedAt: time.Now().UTC(),
	}
	db.reports = append(db.reports, ownedReport{userID: userID, report: r})
	return r, nil
}

// ListReportsSince returns reports at or after since, oldest first.
func (db *DB) ListReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) ([]domain.HabitReport, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.HabitReport
	for _, or := range db.reports {
		r := or.report
		if or.userID == userID && r.HabitID == habitID && !r.ReportedAt.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportedAt.Before(out[j].ReportedAt) })
	return out, nil
}

// DeleteReportsSince removes every report at or after since.
func (db *DB) DeleteReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.reports[:0]
	for _, or := range db.reports {
		r := or.report
		if or.userID == userID && r.HabitID == habitID && !r.ReportedAt.Before(since) {
			continue
		}
		kept = append(kept, or)
	}
	db.reports = kept
	return nil
}

// DeleteReportsForHabit removes every report owned by a habit.
func (db *DB) DeleteReportsForHabit(ctx context.Context, userID int64, habitID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.reports[:0]
	for _, or := range db.reports {
		if or.userID == userID && or.report.HabitID == habitID {
			continue
		}
		kept = append(kept, or)
	}
	db.reports = kept
	return nil
}

// --- CategoryRepository ---

// CreateCategory stores a category, assigning its id.
func (db *DB) CreateCategory(ctx context.Context, userID int64, name string) (domain.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := domain.Category{ID: uuid.NewString(), UserID: userID, Name: name}
	db.categories = append(db.categories, c)
	return c, nil
}

// ListCategories returns the user's categories.
func (db *DB) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Category, 0, len(db.categories))
	for _, c := range db.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateCategory renames a category.
func (db *DB) UpdateCategory(ctx context.Context, userID int64, id, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.categories {
		if db.categories[i].UserID == userID && db.categories[i].ID == id {
			db.categories[i].Name = name
			return nil
		}
	}
	return nil
}

// DeleteCategory removes a category. Habit references are left dangling on
// purpose: deletion orphans, it never cascades.
func (db *DB) DeleteCategory(ctx context.Context, userID int64, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.categories {
		if db.categories[i].UserID == userID && db.categories[i].ID == id {
			db.categories = append(db.categories[:i], db.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- UserRepository ---

// GetByUsername returns a user by username, or nil if absent.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// GetByID returns a user by id, or nil if absent.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// CreateUser stores a new user.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	copied := *u
	return &copied, nil
}

// CountUsers returns the number of stored users.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements domain.SessionRepository over the shared DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo returns the session repository view of the database.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a session.
func (s *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent string, expiresAt time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken returns a session, or nil if absent.
func (s *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sess, ok := s.db.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

// Delete removes a session.
func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.sessions, token)
	return nil
}

// DeleteExpired removes every expired session.
func (s *SessionRepo) DeleteExpired(ctx context.Context) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := time.Now()
	for token, sess := range s.db.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.db.sessions, token)
		}
	}
	return nil
}
