package account

import "context"

// Repository defines the interface for account data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, id string, params CreateParams) (*Account, error)

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id string) (*Account, error)

	// List retrieves all accounts, newest first
	List(ctx context.Context) ([]*Account, error)

	// Update applies the non-nil fields of params to an account
	Update(ctx context.Context, id string, params UpdateParams) (*Account, error)

	// Delete removes an account. Returns ErrAccountInUse when movements
	// still reference it.
	Delete(ctx context.Context, id string) error
}
