package bill

import (
	"context"

	"github.com/google/uuid"
)

// Service contains the business logic for bill operations
type Service struct {
	repo Repository
}

// NewService creates a new bill service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateBill creates a new bill with business validation
func (s *Service) CreateBill(ctx context.Context, params CreateParams) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, uuid.NewString(), params)
}

// GetBill retrieves a bill by ID
func (s *Service) GetBill(ctx context.Context, id string) (*Bill, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListBills retrieves all bills, newest first
func (s *Service) ListBills(ctx context.Context) ([]*Bill, error) {
	return s.repo.List(ctx)
}

// UpdateBill updates a bill's fields
func (s *Service) UpdateBill(ctx context.Context, id string, params UpdateParams) (*Bill, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteBill removes a bill
func (s *Service) DeleteBill(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
