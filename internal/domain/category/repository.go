package category

import "context"

// Repository defines the interface for category data access
type Repository interface {
	// Create creates a new category
	Create(ctx context.Context, id string, params CreateParams) (*Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id string) (*Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*Category, error)

	// Update applies the non-nil fields of params to a category
	Update(ctx context.Context, id string, params UpdateParams) (*Category, error)

	// Delete removes a category; referencing movements keep existing with
	// their category reference nullified
	Delete(ctx context.Context, id string) error
}
