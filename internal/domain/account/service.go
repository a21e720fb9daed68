package account

import (
	"context"

	"github.com/google/uuid"
)

// Service contains the business logic for account operations. Balance
// maintenance from movements is not done here; that belongs exclusively
// to the ledger engine in the movement package.
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAccount creates a new account with business validation. The
// supplied balance is both the starting balance and the reconciliation
// baseline.
func (s *Service) CreateAccount(ctx context.Context, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, uuid.NewString(), params)
}

// GetAccount retrieves an account by ID
func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListAccounts retrieves all accounts, newest first
func (s *Service) ListAccounts(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx)
}

// UpdateAccount applies an explicit edit to an account. A balance change
// here is an override outside the ledger invariant.
func (s *Service) UpdateAccount(ctx context.Context, id string, params UpdateParams) (*Account, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteAccount removes an account. Deletion is forbidden while movements
// still reference the account.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
