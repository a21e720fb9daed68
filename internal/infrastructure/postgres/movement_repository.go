package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/codes"

	"fintrack/internal/domain/movement"
)

const movementColumns = `id, account_id, category_id, description, amount, type, date, created_at, updated_at`

type MovementRepository struct {
	db *DB
}

func NewMovementRepository(db *DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) GetByID(ctx context.Context, id string) (*movement.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`

	m, err := scanMovement(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, movement.ErrMovementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movement: %w", err)
	}

	return m, nil
}

func (r *MovementRepository) ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*movement.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var movements []*movement.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movements: %w", err)
	}

	return movements, nil
}

// InTx runs fn inside a database transaction. Any error from fn (or from
// commit) rolls back everything the TxRepository did.
func (r *MovementRepository) InTx(ctx context.Context, fn func(tx movement.TxRepository) error) error {
	ctx, span := dbTracer.Start(ctx, "db.Tx")
	defer span.End()

	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&movementTxRepository{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			span.RecordError(rbErr)
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rbErr, err)
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *MovementRepository) BalanceSnapshot(ctx context.Context, accountID string) (stored, initial, sum float64, err error) {
	// A single statement so the balance and the movement sum come from
	// the same snapshot.
	query := `
		SELECT a.balance, a.initial_balance,
		       COALESCE(SUM(CASE WHEN m.type = 'EXPENSE' THEN -m.amount ELSE m.amount END), 0)
		FROM accounts a
		LEFT JOIN movements m ON m.account_id = a.id
		WHERE a.id = $1
		GROUP BY a.balance, a.initial_balance
	`

	err = r.db.QueryRowContext(ctx, query, accountID).Scan(&stored, &initial, &sum)
	if err == sql.ErrNoRows {
		return 0, 0, 0, movement.ErrAccountNotFound
	}
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to snapshot balance: %w", err)
	}

	return stored, initial, sum, nil
}

// movementTxRepository implements movement.TxRepository on top of an open
// sql.Tx. It is only ever handed out by InTx.
type movementTxRepository struct {
	tx *sql.Tx
}

func (r *movementTxRepository) AccountExists(ctx context.Context, accountID string) (bool, error) {
	// FOR UPDATE serializes concurrent ledger writes against the same
	// account, so relative balance increments never race each other.
	query := `SELECT 1 FROM accounts WHERE id = $1 FOR UPDATE`

	var one int
	err := r.tx.QueryRowContext(ctx, query, accountID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check account: %w", err)
	}

	return true, nil
}

func (r *movementTxRepository) GetByID(ctx context.Context, id string) (*movement.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`

	m, err := scanMovement(r.tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, movement.ErrMovementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movement: %w", err)
	}

	return m, nil
}

func (r *movementTxRepository) Insert(ctx context.Context, id string, params movement.CreateParams) (*movement.Movement, error) {
	query := `
		INSERT INTO movements (id, account_id, category_id, description, amount, type, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + movementColumns + `
	`

	m, err := scanMovement(r.tx.QueryRowContext(
		ctx, query,
		id, params.AccountID, params.CategoryID, params.Description,
		params.Amount, params.Type, params.Date,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert movement: %w", err)
	}

	return m, nil
}

func (r *movementTxRepository) Update(ctx context.Context, id string, params movement.UpdateParams) (*movement.Movement, error) {
	query := `
		UPDATE movements
		SET description = COALESCE($1, description),
		    amount = COALESCE($2, amount),
		    type = COALESCE($3, type),
		    date = COALESCE($4, date),
		    category_id = COALESCE($5, category_id),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING ` + movementColumns + `
	`

	m, err := scanMovement(r.tx.QueryRowContext(
		ctx, query,
		params.Description, params.Amount, params.Type, params.Date, params.CategoryID, id,
	))
	if err == sql.ErrNoRows {
		return nil, movement.ErrMovementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}

	return m, nil
}

func (r *movementTxRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM movements WHERE id = $1`

	result, err := r.tx.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return movement.ErrMovementNotFound
	}

	return nil
}

func (r *movementTxRepository) AdjustBalance(ctx context.Context, accountID string, delta float64) error {
	// Relative increment at the store, never read-modify-write in the
	// application: two committed adjustments always both land.
	query := `
		UPDATE accounts
		SET balance = balance + $1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	result, err := r.tx.ExecContext(ctx, query, delta, accountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return movement.ErrAccountNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*movement.Movement, error) {
	var m movement.Movement
	var categoryID sql.NullString

	err := row.Scan(
		&m.ID, &m.AccountID, &categoryID, &m.Description,
		&m.Amount, &m.Type, &m.Date, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		m.CategoryID = &categoryID.String
	}

	return &m, nil
}
