package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service is the ledger engine: the exclusive authority for keeping an
// account's stored balance equal to the sum of its movements. Each
// operation runs as one atomic unit of work against the repository, so a
// failed step never leaves a movement without its balance effect (or the
// other way around).
type Service struct {
	repo Repository
}

// NewService creates a new movement service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateMovement inserts a movement and applies its signed amount to the
// owning account's balance in the same transaction.
func (s *Service) CreateMovement(ctx context.Context, params CreateParams) (*Movement, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	var created *Movement
	err := s.repo.InTx(ctx, func(tx TxRepository) error {
		exists, err := tx.AccountExists(ctx, params.AccountID)
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if !exists {
			return ErrAccountNotFound
		}

		m, err := tx.Insert(ctx, uuid.NewString(), params)
		if err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, m.AccountID, m.SignedAmount()); err != nil {
			return err
		}

		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateMovement changes a movement's fields and keeps the account balance
// consistent by reversing the old signed amount and applying the new one.
// Reverse-then-reapply is deliberate: it stays correct even if movements
// were ever allowed to change accounts, and it mirrors Create and Delete.
func (s *Service) UpdateMovement(ctx context.Context, id string, params UpdateParams) (*Movement, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var updated *Movement
	err := s.repo.InTx(ctx, func(tx TxRepository) error {
		old, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := tx.AdjustBalance(ctx, old.AccountID, -old.SignedAmount()); err != nil {
			return err
		}

		m, err := tx.Update(ctx, id, params)
		if err != nil {
			return err
		}

		if err := tx.AdjustBalance(ctx, m.AccountID, m.SignedAmount()); err != nil {
			return err
		}

		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMovement reverses the movement's signed amount from the account
// balance and removes the row, atomically.
func (s *Service) DeleteMovement(ctx context.Context, id string) error {
	return s.repo.InTx(ctx, func(tx TxRepository) error {
		m, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := tx.AdjustBalance(ctx, m.AccountID, -m.SignedAmount()); err != nil {
			return err
		}

		return tx.Delete(ctx, id)
	})
}

// GetMovement retrieves a movement by ID
func (s *Service) GetMovement(ctx context.Context, id string) (*Movement, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByAccount retrieves movements for an account, newest first
func (s *Service) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*Movement, error) {
	if accountID == "" {
		return nil, ErrAccountNotFound
	}
	return s.repo.ListByAccountID(ctx, accountID, limit, offset)
}

// ReconcileAccount recomputes the sum of an account's movements and
// compares it against the stored balance. A non-zero drift means the
// denormalized balance has diverged from the ledger it summarizes.
func (s *Service) ReconcileAccount(ctx context.Context, accountID string) (*Reconciliation, error) {
	stored, initial, sum, err := s.repo.BalanceSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &Reconciliation{
		AccountID:      accountID,
		StoredBalance:  stored,
		InitialBalance: initial,
		MovementSum:    sum,
		Drift:          stored - (initial + sum),
	}, nil
}
