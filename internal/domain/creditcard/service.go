package creditcard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service contains the business logic for credit card operations. Unlike
// account movements there is no stored aggregate to maintain: the used
// limit is computed from transactions on every read.
type Service struct {
	repo Repository
}

// NewService creates a new credit card service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCard creates a new credit card with business validation
func (s *Service) CreateCard(ctx context.Context, params CreateCardParams) (*CreditCard, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateCard(ctx, uuid.NewString(), params)
}

// GetCard retrieves a card with its derived used limit
func (s *Service) GetCard(ctx context.Context, id string) (*CreditCard, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetCardByID(ctx, id)
}

// ListCards retrieves all cards, newest first
func (s *Service) ListCards(ctx context.Context) ([]*CreditCard, error) {
	return s.repo.ListCards(ctx)
}

// UpdateCard updates a card's name, limit, and billing days
func (s *Service) UpdateCard(ctx context.Context, id string, params UpdateCardParams) (*CreditCard, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateCard(ctx, id, params)
}

// DeleteCard removes a card and all of its transactions
func (s *Service) DeleteCard(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteCard(ctx, id)
}

// CreateTransaction records a purchase on a card. New transactions start
// at installment 1 of the requested installment count.
func (s *Service) CreateTransaction(ctx context.Context, params CreateTransactionParams) (*CardTransaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Date.IsZero() {
		params.Date = time.Now()
	}
	if params.Installments == 0 {
		params.Installments = 1
	}

	card, err := s.repo.GetCardByID(ctx, params.CardID)
	if err != nil {
		return nil, err
	}

	return s.repo.CreateTransaction(ctx, uuid.NewString(), CreateTransactionParams{
		CardID:       card.ID,
		Description:  params.Description,
		Amount:       params.Amount,
		Date:         params.Date,
		Installments: params.Installments,
		CategoryID:   params.CategoryID,
	})
}

// GetTransaction retrieves a card transaction by ID
func (s *Service) GetTransaction(ctx context.Context, id string) (*CardTransaction, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetTransactionByID(ctx, id)
}

// ListTransactions retrieves a card's transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, cardID string) ([]*CardTransaction, error) {
	if cardID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.repo.GetCardByID(ctx, cardID); err != nil {
		return nil, err
	}
	return s.repo.ListTransactionsByCardID(ctx, cardID)
}

// UpdateTransaction updates a card transaction
func (s *Service) UpdateTransaction(ctx context.Context, id string, params UpdateTransactionParams) (*CardTransaction, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateTransaction(ctx, id, params)
}

// DeleteTransaction removes a card transaction
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteTransaction(ctx, id)
}
