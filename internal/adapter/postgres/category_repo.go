package postgres

import (
	"context"

	"github.com/google/uuid"

	"habitkit/internal/domain"
)

var _ domain.CategoryRepository = (*DB)(nil)

func (d *DB) CreateCategory(ctx context.Context, userID int64, name string) (domain.Category, error) {
	c := domain.Category{ID: uuid.NewString(), UserID: userID, Name: name}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO categories (id, user_id, name) VALUES ($1, $2, $3)",
		c.ID, c.UserID, c.Name)
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (d *DB) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name FROM categories WHERE user_id = $1 ORDER BY name, id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (d *DB) UpdateCategory(ctx context.Context, userID int64, id, name string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE categories SET name = $1 WHERE user_id = $2 AND id = $3",
		name, userID, id)
	return err
}

// DeleteCategory removes a category only. Habits keep their category ids;
// a deleted category simply renders as uncategorized.
func (d *DB) DeleteCategory(ctx context.Context, userID int64, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM categories WHERE user_id = $1 AND id = $2",
		userID, id)
	return err
}
