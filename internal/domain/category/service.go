package category

import (
	"context"

	"github.com/google/uuid"
)

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCategory creates a new category
func (s *Service) CreateCategory(ctx context.Context, params CreateParams) (*Category, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// UpdateCategory applies a partial update to a category
func (s *Service) UpdateCategory(ctx context.Context, id string, params UpdateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteCategory deletes a category. Deletion is rejected while any
// transaction still references the category, matching the rule applied to
// accounts.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	count, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.repo.Delete(ctx, id)
}

// GetCategory retrieves a category by ID
func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCategories retrieves all categories ordered by name
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}
