package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/creditcard"
)

// cardColumns includes the derived used limit: the sum of the card's
// transaction amounts, computed at read time.
const cardColumns = `
	c.id, c.name, c.card_limit, c.closing_day, c.due_day,
	COALESCE((SELECT SUM(t.amount) FROM card_transactions t WHERE t.card_id = c.id), 0) AS used_limit,
	c.created_at, c.updated_at
`

const cardTransactionColumns = `id, card_id, category_id, description, amount, date, installments, current_installment, created_at, updated_at`

type CreditCardRepository struct {
	db *DB
}

func NewCreditCardRepository(db *DB) *CreditCardRepository {
	return &CreditCardRepository{db: db}
}

func (r *CreditCardRepository) CreateCard(ctx context.Context, id string, params creditcard.CreateCardParams) (*creditcard.CreditCard, error) {
	query := `
		INSERT INTO credit_cards (id, name, card_limit, closing_day, due_day)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, card_limit, closing_day, due_day, created_at, updated_at
	`

	var c creditcard.CreditCard
	err := r.db.QueryRowContext(
		ctx, query,
		id, params.Name, params.Limit, params.ClosingDay, params.DueDay,
	).Scan(
		&c.ID, &c.Name, &c.Limit, &c.ClosingDay, &c.DueDay,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	return &c, nil
}

func (r *CreditCardRepository) GetCardByID(ctx context.Context, id string) (*creditcard.CreditCard, error) {
	query := `SELECT ` + cardColumns + ` FROM credit_cards c WHERE c.id = $1`

	c, err := scanCard(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, creditcard.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}

	return c, nil
}

func (r *CreditCardRepository) ListCards(ctx context.Context) ([]*creditcard.CreditCard, error) {
	query := `SELECT ` + cardColumns + ` FROM credit_cards c ORDER BY c.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	defer rows.Close()

	var cards []*creditcard.CreditCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		cards = append(cards, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit cards: %w", err)
	}

	return cards, nil
}

func (r *CreditCardRepository) UpdateCard(ctx context.Context, id string, params creditcard.UpdateCardParams) (*creditcard.CreditCard, error) {
	query := `
		UPDATE credit_cards c
		SET name = COALESCE($1, name),
		    card_limit = COALESCE($2, card_limit),
		    closing_day = COALESCE($3, closing_day),
		    due_day = COALESCE($4, due_day),
		    updated_at = CURRENT_TIMESTAMP
		WHERE c.id = $5
		RETURNING ` + cardColumns + `
	`

	c, err := scanCard(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Limit, params.ClosingDay, params.DueDay, id,
	))
	if err == sql.ErrNoRows {
		return nil, creditcard.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update credit card: %w", err)
	}

	return c, nil
}

func (r *CreditCardRepository) DeleteCard(ctx context.Context, id string) error {
	// ON DELETE CASCADE removes the card's transactions with it.
	query := `DELETE FROM credit_cards WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete credit card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return creditcard.ErrCardNotFound
	}

	return nil
}

func (r *CreditCardRepository) CreateTransaction(ctx context.Context, id string, params creditcard.CreateTransactionParams) (*creditcard.CardTransaction, error) {
	query := `
		INSERT INTO card_transactions (id, card_id, category_id, description, amount, date, installments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + cardTransactionColumns + `
	`

	t, err := scanCardTransaction(r.db.QueryRowContext(
		ctx, query,
		id, params.CardID, params.CategoryID, params.Description,
		params.Amount, params.Date, params.Installments,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create card transaction: %w", err)
	}

	return t, nil
}

func (r *CreditCardRepository) GetTransactionByID(ctx context.Context, id string) (*creditcard.CardTransaction, error) {
	query := `SELECT ` + cardTransactionColumns + ` FROM card_transactions WHERE id = $1`

	t, err := scanCardTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, creditcard.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card transaction: %w", err)
	}

	return t, nil
}

func (r *CreditCardRepository) ListTransactionsByCardID(ctx context.Context, cardID string) ([]*creditcard.CardTransaction, error) {
	query := `
		SELECT ` + cardTransactionColumns + `
		FROM card_transactions
		WHERE card_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*creditcard.CardTransaction
	for rows.Next() {
		t, err := scanCardTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card transactions: %w", err)
	}

	return transactions, nil
}

func (r *CreditCardRepository) UpdateTransaction(ctx context.Context, id string, params creditcard.UpdateTransactionParams) (*creditcard.CardTransaction, error) {
	query := `
		UPDATE card_transactions
		SET description = COALESCE($1, description),
		    amount = COALESCE($2, amount),
		    date = COALESCE($3, date),
		    installments = COALESCE($4, installments),
		    category_id = COALESCE($5, category_id),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING ` + cardTransactionColumns + `
	`

	t, err := scanCardTransaction(r.db.QueryRowContext(
		ctx, query,
		params.Description, params.Amount, params.Date, params.Installments, params.CategoryID, id,
	))
	if err == sql.ErrNoRows {
		return nil, creditcard.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update card transaction: %w", err)
	}

	return t, nil
}

func (r *CreditCardRepository) DeleteTransaction(ctx context.Context, id string) error {
	query := `DELETE FROM card_transactions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete card transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return creditcard.ErrTransactionNotFound
	}

	return nil
}

func scanCard(row rowScanner) (*creditcard.CreditCard, error) {
	var c creditcard.CreditCard

	err := row.Scan(
		&c.ID, &c.Name, &c.Limit, &c.ClosingDay, &c.DueDay,
		&c.UsedLimit, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func scanCardTransaction(row rowScanner) (*creditcard.CardTransaction, error) {
	var t creditcard.CardTransaction
	var categoryID sql.NullString

	err := row.Scan(
		&t.ID, &t.CardID, &categoryID, &t.Description, &t.Amount,
		&t.Date, &t.Installments, &t.CurrentInstallment,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}

	return &t, nil
}
