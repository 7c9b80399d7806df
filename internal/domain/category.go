package domain

import "context"

// Category is a pure grouping label. Habits reference it weakly via
// CategoryID; deleting a category orphans those references, it never
// cascades to the habits themselves.
type Category struct {
	ID     string `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

// CategoryRepository is the port for category persistence.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, userID int64, name string) (Category, error)
	ListCategories(ctx context.Context, userID int64) ([]Category, error)
	UpdateCategory(ctx context.Context, userID int64, id, name string) error
	DeleteCategory(ctx context.Context, userID int64, id string) error
}
