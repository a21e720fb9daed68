package bill

import "context"

// Repository defines the interface for bill data access
type Repository interface {
	// Create creates a new bill
	Create(ctx context.Context, id string, params CreateParams) (*Bill, error)

	// GetByID retrieves a bill by its ID
	GetByID(ctx context.Context, id string) (*Bill, error)

	// List retrieves all bills, newest first
	List(ctx context.Context) ([]*Bill, error)

	// Update applies the non-nil fields of params to a bill
	Update(ctx context.Context, id string, params UpdateParams) (*Bill, error)

	// Delete removes a bill
	Delete(ctx context.Context, id string) error
}
