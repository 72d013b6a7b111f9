package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/domain/transaction"
)

const transactionColumns = `id, date_time, third_party, value, address, description, invoice_data,
	       account_id, category_id, month_reference_id, created_at, updated_at`

// linkEdgesQuery writes both directions of a relation in one statement, so
// the symmetry invariant cannot be broken by a partial write. Re-linking an
// existing pair is a no-op.
const linkEdgesQuery = `
	INSERT INTO transaction_relations (parent_transaction_id, related_transaction_id)
	VALUES ($1, $2), ($2, $1)
	ON CONFLICT (parent_transaction_id, related_transaction_id) DO NOTHING
`

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a transaction and its link edges in a single database
// transaction, so a failed link insert leaves no orphan row behind.
func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (id, date_time, third_party, value, address, description, invoice_data,
		                          account_id, category_id, month_reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + transactionColumns

	row := dbTx.QueryRowContext(
		ctx, query,
		params.ID, params.DateTime, params.ThirdParty, params.Value,
		nullString(params.Address), params.Description, nullString(params.InvoiceData),
		params.AccountID, params.CategoryID, params.MonthReferenceID,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	for _, relatedID := range params.RelatedTransactionIDs {
		if _, err := dbTx.ExecContext(ctx, linkEdgesQuery, tx.ID, relatedID); err != nil {
			return nil, fmt.Errorf("failed to link transaction %s: %w", relatedID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tx, nil
}

// Update applies a partial update to a transaction
func (r *TransactionRepository) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET date_time = COALESCE($1, date_time),
		    third_party = COALESCE($2, third_party),
		    value = COALESCE($3, value),
		    address = COALESCE($4, address),
		    description = COALESCE($5, description),
		    invoice_data = COALESCE($6, invoice_data),
		    account_id = COALESCE($7, account_id),
		    category_id = COALESCE($8, category_id),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING ` + transactionColumns

	tx, err := scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.DateTime, params.ThirdParty, params.Value, params.Address,
		params.Description, params.InvoiceData, params.AccountID, params.CategoryID,
		id,
	))

	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return tx, nil
}

// Delete removes a transaction and every link edge touching it, in either
// direction, in a single database transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	edgeQuery := `
		DELETE FROM transaction_relations
		WHERE parent_transaction_id = $1 OR related_transaction_id = $1
	`
	if _, err := dbTx.ExecContext(ctx, edgeQuery, id); err != nil {
		return fmt.Errorf("failed to delete transaction relations: %w", err)
	}

	result, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return transaction.ErrTransactionNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// List retrieves all transactions ordered by date
func (r *TransactionRepository) List(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY date_time
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Search retrieves the transactions matching the filters, ordered by date.
// Every provided filter becomes a predicate; a filter set that yields no
// predicates matches nothing and the query is skipped entirely.
func (r *TransactionRepository) Search(ctx context.Context, filters transaction.SearchFilters) ([]*transaction.Transaction, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.AccountID != "" {
		conditions = append(conditions, "account_id = "+arg(filters.AccountID))
	}
	if filters.CategoryID != "" {
		conditions = append(conditions, "category_id = "+arg(filters.CategoryID))
	}
	if filters.MonthReferenceID != "" {
		conditions = append(conditions, "month_reference_id = "+arg(filters.MonthReferenceID))
	}
	if filters.StartDate != nil {
		conditions = append(conditions, "date_time >= "+arg(*filters.StartDate))
	}
	if filters.EndDate != nil {
		conditions = append(conditions, "date_time <= "+arg(*filters.EndDate))
	}
	if filters.MinValue != nil {
		conditions = append(conditions, "value >= "+arg(*filters.MinValue))
	}
	if filters.MaxValue != nil {
		conditions = append(conditions, "value <= "+arg(*filters.MaxValue))
	}
	if filters.ThirdParty != "" {
		conditions = append(conditions, "third_party ILIKE "+arg("%"+filters.ThirdParty+"%"))
	}
	if filters.Query != "" {
		pattern := arg("%" + filters.Query + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(description ILIKE %s OR third_party ILIKE %s OR COALESCE(address, '') ILIKE %s)",
			pattern, pattern, pattern,
		))
	}

	if len(conditions) == 0 {
		return []*transaction.Transaction{}, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date_time
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Exists checks if a transaction with the given ID exists
func (r *TransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}

	return exists, nil
}

// Link records the relation in both directions
func (r *TransactionRepository) Link(ctx context.Context, id, relatedID string) error {
	if _, err := r.db.ExecContext(ctx, linkEdgesQuery, id, relatedID); err != nil {
		return fmt.Errorf("failed to link transactions: %w", err)
	}
	return nil
}

// Unlink removes the relation in both directions
func (r *TransactionRepository) Unlink(ctx context.Context, id, relatedID string) error {
	query := `
		DELETE FROM transaction_relations
		WHERE (parent_transaction_id = $1 AND related_transaction_id = $2)
		   OR (parent_transaction_id = $2 AND related_transaction_id = $1)
	`

	if _, err := r.db.ExecContext(ctx, query, id, relatedID); err != nil {
		return fmt.Errorf("failed to unlink transactions: %w", err)
	}
	return nil
}

// ListRelated retrieves the transactions linked to the given one
func (r *TransactionRepository) ListRelated(ctx context.Context, id string) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.date_time, t.third_party, t.value, t.address, t.description, t.invoice_data,
		       t.account_id, t.category_id, t.month_reference_id, t.created_at, t.updated_at
		FROM transactions t
		JOIN transaction_relations tr ON tr.related_transaction_id = t.id
		WHERE tr.parent_transaction_id = $1
		ORDER BY t.date_time
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list related transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumByMonthReference returns per-account raw value sums for the period
func (r *TransactionRepository) SumByMonthReference(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT account_id, COALESCE(SUM(value), 0)
		FROM transactions
		WHERE month_reference_id = $1
		GROUP BY account_id
	`

	rows, err := r.db.QueryContext(ctx, query, monthReferenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by month reference: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var total decimal.Decimal
		if err := rows.Scan(&accountID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan account sum: %w", err)
		}
		sums[accountID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account sums: %w", err)
	}

	return sums, nil
}

// rowScanner is satisfied by *sql.Row, *sql.Rows and tracedRow
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var address, invoiceData sql.NullString

	err := row.Scan(
		&tx.ID, &tx.DateTime, &tx.ThirdParty, &tx.Value,
		&address, &tx.Description, &invoiceData,
		&tx.AccountID, &tx.CategoryID, &tx.MonthReferenceID,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		tx.Address = address.String
	}
	if invoiceData.Valid {
		tx.InvoiceData = invoiceData.String
	}

	return &tx, nil
}

func scanTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var transactions []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
