package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"tally/internal/domain/category"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO transaction_categories (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at, updated_at
	`

	var cat category.Category
	err := r.db.QueryRowContext(ctx, query, params.ID, params.Name).Scan(
		&cat.ID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &cat, nil
}

// Update applies a partial update to a category
func (r *CategoryRepository) Update(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error) {
	query := `
		UPDATE transaction_categories
		SET name = COALESCE($1, name),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, name, created_at, updated_at
	`

	var cat category.Category
	err := r.db.QueryRowContext(ctx, query, params.Name, id).Scan(
		&cat.ID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &cat, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM transaction_categories WHERE id = $1`

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

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM transaction_categories
		WHERE id = $1
	`

	var cat category.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &cat, nil
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM transaction_categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var cat category.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// CountTransactions returns how many transactions reference the category
func (r *CategoryRepository) CountTransactions(ctx context.Context, id string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}

	return count, nil
}
