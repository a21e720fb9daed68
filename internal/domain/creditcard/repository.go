package creditcard

import "context"

// Repository defines the interface for credit card data access
type Repository interface {
	// CreateCard creates a new credit card
	CreateCard(ctx context.Context, id string, params CreateCardParams) (*CreditCard, error)

	// GetCardByID retrieves a card with its derived used limit
	GetCardByID(ctx context.Context, id string) (*CreditCard, error)

	// ListCards retrieves all cards, newest first, each with its derived
	// used limit
	ListCards(ctx context.Context) ([]*CreditCard, error)

	// UpdateCard applies the non-nil fields of params to a card
	UpdateCard(ctx context.Context, id string, params UpdateCardParams) (*CreditCard, error)

	// DeleteCard removes a card and cascades to its transactions
	DeleteCard(ctx context.Context, id string) error

	// CreateTransaction creates a new card transaction
	CreateTransaction(ctx context.Context, id string, params CreateTransactionParams) (*CardTransaction, error)

	// GetTransactionByID retrieves a card transaction by its ID
	GetTransactionByID(ctx context.Context, id string) (*CardTransaction, error)

	// ListTransactionsByCardID retrieves a card's transactions, newest first
	ListTransactionsByCardID(ctx context.Context, cardID string) ([]*CardTransaction, error)

	// UpdateTransaction applies the non-nil fields of params to a card transaction
	UpdateTransaction(ctx context.Context, id string, params UpdateTransactionParams) (*CardTransaction, error)

	// DeleteTransaction removes a card transaction
	DeleteTransaction(ctx context.Context, id string) error
}
