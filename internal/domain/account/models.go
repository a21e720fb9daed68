package account

import (
	"errors"
	"math"
	"time"
)

// Allowed account types
var accountTypes = map[string]struct{}{
	"checking":   {},
	"savings":    {},
	"investment": {},
	"cash":       {},
}

// Domain errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInUse       = errors.New("account has movements and cannot be deleted")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidInput       = errors.New("invalid input")
)

// Account represents a financial account domain entity. Balance is a
// denormalized aggregate maintained by the ledger engine; InitialBalance
// is the baseline it started from, kept so audits can verify
// balance == initial balance + sum of movements.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"` // checking, savings, investment, cash
	Balance        float64   `json:"balance"`
	InitialBalance float64   `json:"initialBalance"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new account
type CreateParams struct {
	Name    string
	Type    string
	Balance float64
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("account name is required")
	}
	if !IsValidType(p.Type) {
		return ErrInvalidAccountType
	}
	if math.IsNaN(p.Balance) || math.IsInf(p.Balance, 0) {
		return errors.New("balance must be a finite value")
	}
	return nil
}

// UpdateParams contains parameters for updating an account. Nil fields
// keep their prior values. Setting Balance is an explicit override that
// bypasses the ledger engine; the stored baseline is rebased by the same
// delta so reconciliation keeps measuring ledger drift only.
type UpdateParams struct {
	Name    *string
	Type    *string
	Balance *float64
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("account name is required")
	}
	if p.Type != nil && !IsValidType(*p.Type) {
		return ErrInvalidAccountType
	}
	if p.Balance != nil && (math.IsNaN(*p.Balance) || math.IsInf(*p.Balance, 0)) {
		return errors.New("balance must be a finite value")
	}
	return nil
}

// IsValidType checks if the provided account type is valid.
func IsValidType(t string) bool {
	_, ok := accountTypes[t]
	return ok
}
