package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"habitkit/internal/domain"
)

var _ domain.HabitRepository = (*DB)(nil)

func (d *DB) CreateHabit(ctx context.Context, userID int64, h domain.Habit) (domain.Habit, error) {
	h.ID = uuid.NewString()
	h.UserID = userID
	h.CreatedAt = time.Now().UTC()

	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, name, description, type, frequency, goal, icon, options, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		h.ID, h.UserID, h.Name, h.Description, string(h.Type), string(h.Frequency),
		h.Goal, h.Icon, pq.Array(h.Options), h.CategoryID, h.CreatedAt)
	if err != nil {
		return domain.Habit{}, err
	}
	return h, nil
}

func (d *DB) GetHabit(ctx context.Context, userID int64, id string) (*domain.Habit, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, type, frequency, goal, icon, options, category_id, created_at
		 FROM habits WHERE user_id = $1 AND id = $2`,
		userID, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (d *DB) ListHabits(ctx context.Context, userID int64) ([]domain.Habit, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, name, description, type, frequency, goal, icon, options, category_id, created_at
		 FROM habits WHERE user_id = $1 ORDER BY created_at, id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (d *DB) UpdateHabit(ctx context.Context, userID int64, id string, patch domain.HabitPatch) error {
	h, err := d.GetHabit(ctx, userID, id)
	if err != nil || h == nil {
		return err
	}
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
		h.Options = *patch.Options
	}
	if patch.CategoryID != nil {
		h.CategoryID = *patch.CategoryID
	}

	_, err = d.sql.ExecContext(ctx,
		`UPDATE habits SET name = $1, description = $2, type = $3, frequency = $4, goal = $5,
		 icon = $6, options = $7, category_id = $8 WHERE user_id = $9 AND id = $10`,
		h.Name, h.Description, string(h.Type), string(h.Frequency), h.Goal,
		h.Icon, pq.Array(h.Options), h.CategoryID, userID, id)
	return err
}

func (d *DB) DeleteHabit(ctx context.Context, userID int64, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM habits WHERE user_id = $1 AND id = $2", userID, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (domain.Habit, error) {
	var h domain.Habit
	var htype, freq string
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &htype, &freq,
		&h.Goal, &h.Icon, pq.Array(&h.Options), &h.CategoryID, &h.CreatedAt)
	if err != nil {
		return domain.Habit{}, err
	}
	h.Type = domain.HabitType(htype)
	h.Frequency = domain.Frequency(freq)
	return h, nil
}
