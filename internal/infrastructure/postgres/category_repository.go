package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, id string, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, name, color, created_at, updated_at
	`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id, params.Name, params.Color))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	query := `SELECT id, name, color, created_at, updated_at FROM categories WHERE id = $1`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	query := `SELECT id, name, color, created_at, updated_at FROM categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    color = COALESCE($2, color),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, name, color, created_at, updated_at
	`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, params.Name, params.Color, id))
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	// ON DELETE SET NULL on movements and card_transactions keeps the
	// referencing records alive without a category.
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func scanCategory(row rowScanner) (*category.Category, error) {
	var c category.Category
	var color sql.NullString

	err := row.Scan(&c.ID, &c.Name, &color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if color.Valid {
		c.Color = &color.String
	}

	return &c, nil
}
