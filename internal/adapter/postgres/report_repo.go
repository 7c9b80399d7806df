package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"habitkit/internal/domain"
)

var _ domain.ReportRepository = (*DB)(nil)

func (d *DB) AppendReport(ctx context.Context, userID int64, habitID string, v domain.ReportValue) (domain.HabitReport, error) {
	r := domain.HabitReport{
		ID:      uuid.NewString(),
		HabitID: habitID,
		Value:   v,
	}
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO habit_reports (id, user_id, habit_id, kind, value, reported_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 RETURNING reported_at`,
		r.ID, userID, habitID, string(v.Kind), v.Encode()).Scan(&r.ReportedAt)
	if err != nil {
		return domain.HabitReport{}, err
	}
	r.ReportedAt = r.ReportedAt.UTC()
	return r, nil
}

func (d *DB) ListReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) ([]domain.HabitReport, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, habit_id, kind, value, reported_at
		 FROM habit_reports
		 WHERE user_id = $1 AND habit_id = $2 AND reported_at >= $3
		 ORDER BY reported_at, id`,
		userID, habitID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var reports []domain.HabitReport
	for rows.Next() {
		var r domain.HabitReport
		var kind, value string
		if err := rows.Scan(&r.ID, &r.HabitID, &kind, &value, &r.ReportedAt); err != nil {
			return nil, err
		}
		r.Value = domain.DecodeReportValue(domain.HabitType(kind), value)
		r.ReportedAt = r.ReportedAt.UTC()
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (d *DB) DeleteReportsSince(ctx context.Context, userID int64, habitID string, since time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM habit_reports WHERE user_id = $1 AND habit_id = $2 AND reported_at >= $3",
		userID, habitID, since)
	return err
}

func (d *DB) DeleteReportsForHabit(ctx context.Context, userID int64, habitID string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM habit_reports WHERE user_id = $1 AND habit_id = $2",
		userID, habitID)
	return err
}
