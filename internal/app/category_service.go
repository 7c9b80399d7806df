package app

import (
	"context"
	"errors"

	"habitkit/internal/domain"
)

// CategoryService encapsulates category management use cases.
type CategoryService struct {
	repo domain.CategoryRepository
}

// NewCategoryService creates a CategoryService backed by the given
// repository.
func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, userID int64, name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, errors.New("name is required")
	}
	return s.repo.CreateCategory(ctx, userID, name)
}

// List returns the user's categories.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

// Rename changes a category's name.
func (s *CategoryService) Rename(ctx context.Context, userID int64, id, name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	return s.repo.UpdateCategory(ctx, userID, id, name)
}

// Delete removes a category. Habits referencing it are left untouched;
// their dangling CategoryID renders as "uncategorized" at read time.
func (s *CategoryService) Delete(ctx context.Context, userID int64, id string) error {
	return s.repo.DeleteCategory(ctx, userID, id)
}
