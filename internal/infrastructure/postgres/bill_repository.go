package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/bill"
)

const billColumns = `id, description, amount, due_date, frequency, created_at, updated_at`

type BillRepository struct {
	db *DB
}

func NewBillRepository(db *DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, id string, params bill.CreateParams) (*bill.Bill, error) {
	query := `
		INSERT INTO bills (id, description, amount, due_date, frequency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + billColumns + `
	`

	b, err := scanBill(r.db.QueryRowContext(
		ctx, query,
		id, params.Description, params.Amount, params.DueDate, params.Frequency,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return b, nil
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	b, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, bill.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return b, nil
}

func (r *BillRepository) List(ctx context.Context) ([]*bill.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY due_date, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*bill.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}

	return bills, nil
}

func (r *BillRepository) Update(ctx context.Context, id string, params bill.UpdateParams) (*bill.Bill, error) {
	query := `
		UPDATE bills
		SET description = COALESCE($1, description),
		    amount = COALESCE($2, amount),
		    due_date = COALESCE($3, due_date),
		    frequency = COALESCE($4, frequency),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING ` + billColumns + `
	`

	b, err := scanBill(r.db.QueryRowContext(
		ctx, query,
		params.Description, params.Amount, params.DueDate, params.Frequency, id,
	))
	if err == sql.ErrNoRows {
		return nil, bill.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return b, nil
}

func (r *BillRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM bills WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return bill.ErrBillNotFound
	}

	return nil
}

func scanBill(row rowScanner) (*bill.Bill, error) {
	var b bill.Bill

	err := row.Scan(
		&b.ID, &b.Description, &b.Amount, &b.DueDate, &b.Frequency,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}
