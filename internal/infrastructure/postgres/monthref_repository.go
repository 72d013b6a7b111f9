package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"tally/internal/domain/monthref"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// MonthReferenceRepository implements the monthref.Repository interface for PostgreSQL
type MonthReferenceRepository struct {
	db *DB
}

// NewMonthReferenceRepository creates a new PostgreSQL month reference repository
func NewMonthReferenceRepository(db *DB) *MonthReferenceRepository {
	return &MonthReferenceRepository{db: db}
}

// Create creates a new month reference. The UNIQUE(month, year) constraint
// is surfaced as monthref.ErrPeriodExists.
func (r *MonthReferenceRepository) Create(ctx context.Context, params monthref.CreateParams) (*monthref.MonthReference, error) {
	query := `
		INSERT INTO month_references (id, month, year, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, month, year, active, created_at, updated_at
	`

	var ref monthref.MonthReference
	err := r.db.QueryRowContext(
		ctx, query,
		params.ID, params.Month, params.Year, params.Active,
	).Scan(
		&ref.ID, &ref.Month, &ref.Year, &ref.Active, &ref.CreatedAt, &ref.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, monthref.ErrPeriodExists
		}
		return nil, fmt.Errorf("failed to create month reference: %w", err)
	}

	return &ref, nil
}

// Update applies a partial update to a month reference
func (r *MonthReferenceRepository) Update(ctx context.Context, id string, params monthref.UpdateParams) (*monthref.MonthReference, error) {
	query := `
		UPDATE month_references
		SET month = COALESCE($1, month),
		    year = COALESCE($2, year),
		    active = COALESCE($3, active),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING id, month, year, active, created_at, updated_at
	`

	var ref monthref.MonthReference
	err := r.db.QueryRowContext(
		ctx, query,
		params.Month, params.Year, params.Active, id,
	).Scan(
		&ref.ID, &ref.Month, &ref.Year, &ref.Active, &ref.CreatedAt, &ref.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, monthref.ErrMonthReferenceNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, monthref.ErrPeriodExists
		}
		return nil, fmt.Errorf("failed to update month reference: %w", err)
	}

	return &ref, nil
}

// Delete removes a month reference
func (r *MonthReferenceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM month_references WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete month reference: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return monthref.ErrMonthReferenceNotFound
	}

	return nil
}

// GetByID retrieves a month reference by its ID
func (r *MonthReferenceRepository) GetByID(ctx context.Context, id string) (*monthref.MonthReference, error) {
	query := `
		SELECT id, month, year, active, created_at, updated_at
		FROM month_references
		WHERE id = $1
	`

	var ref monthref.MonthReference
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ref.ID, &ref.Month, &ref.Year, &ref.Active, &ref.CreatedAt, &ref.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, monthref.ErrMonthReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get month reference: %w", err)
	}

	return &ref, nil
}

// List retrieves all month references ordered by year then month
func (r *MonthReferenceRepository) List(ctx context.Context) ([]*monthref.MonthReference, error) {
	query := `
		SELECT id, month, year, active, created_at, updated_at
		FROM month_references
		ORDER BY year, month
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list month references: %w", err)
	}
	defer rows.Close()

	return scanMonthReferences(rows)
}

// ListActive retrieves active month references ordered by year then month
func (r *MonthReferenceRepository) ListActive(ctx context.Context) ([]*monthref.MonthReference, error) {
	query := `
		SELECT id, month, year, active, created_at, updated_at
		FROM month_references
		WHERE active
		ORDER BY year, month
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active month references: %w", err)
	}
	defer rows.Close()

	return scanMonthReferences(rows)
}

// FindByPeriod looks up the reference for a (month, year) pair
func (r *MonthReferenceRepository) FindByPeriod(ctx context.Context, month, year int) (*monthref.MonthReference, error) {
	query := `
		SELECT id, month, year, active, created_at, updated_at
		FROM month_references
		WHERE month = $1 AND year = $2
	`

	var ref monthref.MonthReference
	err := r.db.QueryRowContext(ctx, query, month, year).Scan(
		&ref.ID, &ref.Month, &ref.Year, &ref.Active, &ref.CreatedAt, &ref.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Intentionally returns (nil, nil) instead of an error
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find month reference by period: %w", err)
	}

	return &ref, nil
}

func scanMonthReferences(rows *sql.Rows) ([]*monthref.MonthReference, error) {
	var refs []*monthref.MonthReference
	for rows.Next() {
		var ref monthref.MonthReference
		if err := rows.Scan(&ref.ID, &ref.Month, &ref.Year, &ref.Active, &ref.CreatedAt, &ref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan month reference: %w", err)
		}
		refs = append(refs, &ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month references: %w", err)
	}

	return refs, nil
}
