package movement

import "context"

// Repository defines the interface for movement data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// GetByID retrieves a movement by its ID
	GetByID(ctx context.Context, id string) (*Movement, error)

	// ListByAccountID retrieves movements for an account, newest first
	ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*Movement, error)

	// InTx runs fn inside a single atomic unit of work. Every read and
	// write performed through the TxRepository commits together or not at
	// all; if fn returns an error the transaction is rolled back and the
	// error is returned. The store provides isolation between concurrent
	// units touching the same account.
	InTx(ctx context.Context, fn func(tx TxRepository) error) error

	// BalanceSnapshot returns the account's stored balance, initial
	// balance, and the sum of signed movement amounts, read consistently.
	BalanceSnapshot(ctx context.Context, accountID string) (stored, initial, sum float64, err error)
}

// TxRepository exposes the writes available inside an atomic unit of work.
type TxRepository interface {
	// AccountExists checks if an account with the given ID exists
	AccountExists(ctx context.Context, accountID string) (bool, error)

	// GetByID retrieves a movement by its ID within the transaction
	GetByID(ctx context.Context, id string) (*Movement, error)

	// Insert creates a new movement row
	Insert(ctx context.Context, id string, params CreateParams) (*Movement, error)

	// Update applies the non-nil fields of params to an existing movement
	Update(ctx context.Context, id string, params UpdateParams) (*Movement, error)

	// Delete removes a movement row
	Delete(ctx context.Context, id string) error

	// AdjustBalance applies a relative delta to the account's stored
	// balance. Implementations must express this as an atomic increment
	// at the store (balance = balance + delta), never as an application
	// level read-modify-write.
	AdjustBalance(ctx context.Context, accountID string, delta float64) error
}
