package bill

import (
	"errors"
	"math"
	"time"
)

// Allowed bill frequencies
var billFrequencies = map[string]struct{}{
	"monthly":  {},
	"yearly":   {},
	"one-time": {},
}

// Domain errors
var (
	ErrBillNotFound     = errors.New("bill not found")
	ErrInvalidFrequency = errors.New("invalid bill frequency")
	ErrInvalidInput     = errors.New("invalid input")
)

// Bill represents a recurring or one-time payable. Bills are independent
// records with no balance invariant; paying one is done by recording a
// movement on an account.
type Bill struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
	Frequency   string    `json:"frequency"` // monthly, yearly, one-time
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new bill
type CreateParams struct {
	Description string
	Amount      float64
	DueDate     time.Time
	Frequency   string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Description == "" {
		return errors.New("description is required")
	}
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return errors.New("amount must be a positive finite value")
	}
	if p.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	if !IsValidFrequency(p.Frequency) {
		return ErrInvalidFrequency
	}
	return nil
}

// UpdateParams contains parameters for updating a bill
type UpdateParams struct {
	Description *string
	Amount      *float64
	DueDate     *time.Time
	Frequency   *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Description != nil && *p.Description == "" {
		return errors.New("description is required")
	}
	if p.Amount != nil && (*p.Amount <= 0 || math.IsNaN(*p.Amount) || math.IsInf(*p.Amount, 0)) {
		return errors.New("amount must be a positive finite value")
	}
	if p.Frequency != nil && !IsValidFrequency(*p.Frequency) {
		return ErrInvalidFrequency
	}
	return nil
}

// IsValidFrequency checks if the provided frequency is valid.
func IsValidFrequency(f string) bool {
	_, ok := billFrequencies[f]
	return ok
}
