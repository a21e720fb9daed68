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

// CreateCategory creates a new category with business validation
func (s *Service) CreateCategory(ctx context.Context, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, uuid.NewString(), params)
}

// GetCategory retrieves a category by ID
func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListCategories retrieves all categories ordered by name
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

// UpdateCategory updates a category's name and color
func (s *Service) UpdateCategory(ctx context.Context, id string, params UpdateParams) (*Category, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteCategory removes a category. Referencing movements and card
// transactions are kept, with their category reference set to null.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
