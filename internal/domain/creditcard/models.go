package creditcard

import (
	"errors"
	"math"
	"time"
)

// Domain errors
var (
	ErrCardNotFound        = errors.New("credit card not found")
	ErrTransactionNotFound = errors.New("card transaction not found")
	ErrInvalidDay          = errors.New("day must be between 1 and 31")
	ErrInvalidAmount       = errors.New("amount must be a positive finite value")
	ErrInvalidInput        = errors.New("invalid input")
)

// CreditCard represents a credit card. UsedLimit is a read-time derived
// aggregate over the card's transactions, never a stored value.
type CreditCard struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Limit      float64   `json:"limit"`
	ClosingDay int       `json:"closingDay"`
	DueDay     int       `json:"dueDay"`
	UsedLimit  float64   `json:"usedLimit"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CardTransaction represents a purchase on a credit card. Card
// transactions do not touch any account balance; they only feed the
// derived used-limit aggregate.
type CardTransaction struct {
	ID                 string    `json:"id"`
	CardID             string    `json:"creditCardId"`
	Description        string    `json:"description"`
	Amount             float64   `json:"amount"`
	Date               time.Time `json:"date"`
	Installments       int       `json:"installments"`
	CurrentInstallment int       `json:"currentInstallment"`
	CategoryID         *string   `json:"categoryId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateCardParams contains parameters for creating a new credit card
type CreateCardParams struct {
	Name       string
	Limit      float64
	ClosingDay int
	DueDay     int
}

// Validate validates the create parameters
func (p CreateCardParams) Validate() error {
	if p.Name == "" {
		return errors.New("card name is required")
	}
	if p.Limit < 0 || math.IsNaN(p.Limit) || math.IsInf(p.Limit, 0) {
		return errors.New("limit must be a non-negative finite value")
	}
	if !isValidDay(p.ClosingDay) || !isValidDay(p.DueDay) {
		return ErrInvalidDay
	}
	return nil
}

// UpdateCardParams contains parameters for updating a credit card
type UpdateCardParams struct {
	Name       *string
	Limit      *float64
	ClosingDay *int
	DueDay     *int
}

// Validate validates the update parameters
func (p UpdateCardParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("card name is required")
	}
	if p.Limit != nil && (*p.Limit < 0 || math.IsNaN(*p.Limit) || math.IsInf(*p.Limit, 0)) {
		return errors.New("limit must be a non-negative finite value")
	}
	if p.ClosingDay != nil && !isValidDay(*p.ClosingDay) {
		return ErrInvalidDay
	}
	if p.DueDay != nil && !isValidDay(*p.DueDay) {
		return ErrInvalidDay
	}
	return nil
}

// CreateTransactionParams contains parameters for creating a card transaction
type CreateTransactionParams struct {
	CardID       string
	Description  string
	Amount       float64
	Date         time.Time // zero value defaults to now
	Installments int       // zero defaults to 1
	CategoryID   *string
}

// Validate validates the create parameters
func (p CreateTransactionParams) Validate() error {
	if p.CardID == "" {
		return errors.New("card ID is required")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return ErrInvalidAmount
	}
	if p.Installments < 0 {
		return errors.New("installments must be positive")
	}
	return nil
}

// UpdateTransactionParams contains parameters for updating a card transaction
type UpdateTransactionParams struct {
	Description  *string
	Amount       *float64
	Date         *time.Time
	Installments *int
	CategoryID   *string
}

// Validate validates the update parameters
func (p UpdateTransactionParams) Validate() error {
	if p.Description != nil && *p.Description == "" {
		return errors.New("description is required")
	}
	if p.Amount != nil && (*p.Amount <= 0 || math.IsNaN(*p.Amount) || math.IsInf(*p.Amount, 0)) {
		return ErrInvalidAmount
	}
	if p.Installments != nil && *p.Installments < 1 {
		return errors.New("installments must be positive")
	}
	return nil
}

func isValidDay(d int) bool {
	return d >= 1 && d <= 31
}
