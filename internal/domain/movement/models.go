package movement

import (
	"errors"
	"math"
	"time"
)

// Movement types. The amount is always stored positive; the type carries
// the sign of its effect on the account balance.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Domain errors
var (
	ErrMovementNotFound = errors.New("movement not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidAmount    = errors.New("amount must be a positive finite value")
	ErrInvalidType      = errors.New("invalid movement type")
)

// Movement represents a single financial movement against an account.
type Movement struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // INCOME or EXPENSE
	Date        time.Time `json:"date"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SignedAmount returns the movement's contribution to the account balance:
// +Amount for INCOME, -Amount for EXPENSE.
func (m *Movement) SignedAmount() float64 {
	return signedAmount(m.Amount, m.Type)
}

func signedAmount(amount float64, movementType string) float64 {
	if movementType == TypeExpense {
		return -amount
	}
	return amount
}

// IsValidType checks if the provided movement type is valid.
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// CreateParams contains parameters for creating a new movement
type CreateParams struct {
	AccountID   string
	Description string
	Amount      float64
	Type        string
	Date        time.Time // zero value defaults to now
	CategoryID  *string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.AccountID == "" {
		return errors.New("account ID is required")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	if err := validateAmount(p.Amount); err != nil {
		return err
	}
	if !IsValidType(p.Type) {
		return ErrInvalidType
	}
	return nil
}

// UpdateParams contains the new field values for a movement. Nil fields
// keep their prior values. The owning account cannot be changed.
type UpdateParams struct {
	Description *string
	Amount      *float64
	Type        *string
	Date        *time.Time
	CategoryID  *string
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Type != nil && !IsValidType(*p.Type) {
		return ErrInvalidType
	}
	return nil
}

func validateAmount(amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}

// Reconciliation is the result of comparing an account's stored balance
// with its initial balance plus the sum of its movements. Drift is
// StoredBalance - (InitialBalance + MovementSum) and must be zero for a
// healthy ledger.
type Reconciliation struct {
	AccountID      string  `json:"accountId"`
	StoredBalance  float64 `json:"storedBalance"`
	InitialBalance float64 `json:"initialBalance"`
	MovementSum    float64 `json:"movementSum"`
	Drift          float64 `json:"drift"`
}

// InSync reports whether the stored balance matches the movement sum.
// Comparison uses a small epsilon since balances travel as float64.
func (r Reconciliation) InSync() bool {
	return math.Abs(r.Drift) < 1e-9
}
