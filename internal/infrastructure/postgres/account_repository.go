package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"fintrack/internal/domain/account"
)

const accountColumns = `id, name, type, balance, initial_balance, created_at, updated_at`

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, id string, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, name, type, balance, initial_balance)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING ` + accountColumns + `
	`

	var a account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		id, params.Name, params.Type, params.Balance,
	).Scan(
		&a.ID, &a.Name, &a.Type, &a.Balance, &a.InitialBalance,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var a account.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Type, &a.Balance, &a.InitialBalance,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var a account.Account
		err := rows.Scan(
			&a.ID, &a.Name, &a.Type, &a.Balance, &a.InitialBalance,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, id string, params account.UpdateParams) (*account.Account, error) {
	// A balance override rebases initial_balance by the same delta, so
	// the override never shows up as drift against the movement ledger.
	query := `
		UPDATE accounts
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    initial_balance = initial_balance + COALESCE($3 - balance, 0),
		    balance = COALESCE($3, balance),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING ` + accountColumns + `
	`

	var a account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Type, params.Balance, id,
	).Scan(
		&a.ID, &a.Name, &a.Type, &a.Balance, &a.InitialBalance,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &a, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// 23503 = foreign_key_violation: movements still reference the account
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return account.ErrAccountInUse
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}
