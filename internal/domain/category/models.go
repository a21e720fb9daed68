package category

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Category represents a movement category. Movements and card
// transactions reference categories weakly: deleting a category nullifies
// those references, it never deletes the records.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new category
type CreateParams struct {
	Name  string
	Color *string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("category name is required")
	}
	return nil
}

// UpdateParams contains parameters for updating a category
type UpdateParams struct {
	Name  *string
	Color *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("category name is required")
	}
	return nil
}
