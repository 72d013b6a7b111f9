package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/domain/account"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, name, account_type)
		VALUES ($1, $2, $3)
		RETURNING id, name, account_type, created_at, updated_at
	`

	var acc account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		params.ID, params.Name, params.AccountType,
	).Scan(
		&acc.ID, &acc.Name, &acc.AccountType, &acc.CreatedAt, &acc.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &acc, nil
}

// Update applies a partial update to an account
func (r *AccountRepository) Update(ctx context.Context, id string, params account.UpdateParams) (*account.Account, error) {
	query := `
		UPDATE accounts
		SET name = COALESCE($1, name),
		    account_type = COALESCE($2, account_type),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING id, name, account_type, created_at, updated_at
	`

	var acc account.Account
	err := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.AccountType, id,
	).Scan(
		&acc.ID, &acc.Name, &acc.AccountType, &acc.CreatedAt, &acc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &acc, nil
}

// Delete removes an account
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
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

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `
		SELECT id, name, account_type, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acc.ID, &acc.Name, &acc.AccountType, &acc.CreatedAt, &acc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// List retrieves all accounts ordered by name
func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `
		SELECT id, name, account_type, created_at, updated_at
		FROM accounts
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListByType retrieves all accounts of the given type ordered by name
func (r *AccountRepository) ListByType(ctx context.Context, accountType account.Type) ([]*account.Account, error) {
	query := `
		SELECT id, name, account_type, created_at, updated_at
		FROM accounts
		WHERE account_type = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by type: %w", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// CountTransactions returns how many transactions reference the account
func (r *AccountRepository) CountTransactions(ctx context.Context, id string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE account_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count account transactions: %w", err)
	}

	return count, nil
}

// SumValues returns the raw sum of all transaction values for the account
func (r *AccountRepository) SumValues(ctx context.Context, id string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(value), 0) FROM transactions WHERE account_id = $1`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account transactions: %w", err)
	}

	return total, nil
}

// SumValuesInRange returns the raw sum of transaction values for the account
// with dates inside the half-open window [from, to)
func (r *AccountRepository) SumValuesInRange(ctx context.Context, id string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM transactions
		WHERE account_id = $1 AND date_time >= $2 AND date_time < $3
	`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, id, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account transactions in range: %w", err)
	}

	return total, nil
}

func scanAccounts(rows *sql.Rows) ([]*account.Account, error) {
	var accounts []*account.Account
	for rows.Next() {
		var acc account.Account
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.AccountType, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}
