package transaction

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for transaction data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// Create inserts a transaction and the link edges for
	// RelatedTransactionIDs in a single unit of work
	Create(ctx context.Context, params CreateParams) (*Transaction, error)

	// Update applies a partial update; returns ErrTransactionNotFound if id is absent
	Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error)

	// Delete removes a transaction together with every link edge touching
	// it, in either direction
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a transaction by its ID
	GetByID(ctx context.Context, id string) (*Transaction, error)

	// List retrieves all transactions ordered by date
	List(ctx context.Context) ([]*Transaction, error)

	// Search retrieves the transactions matching the given filters, ordered
	// by date. Month and Year are ignored here; callers resolve them to a
	// MonthReferenceID first.
	Search(ctx context.Context, filters SearchFilters) ([]*Transaction, error)

	// Exists reports whether a transaction with the given id exists
	Exists(ctx context.Context, id string) (bool, error)

	// Link records the relation in both directions. Linking an already
	// linked pair is a no-op.
	Link(ctx context.Context, id, relatedID string) error

	// Unlink removes the relation in both directions. Unlinking a pair that
	// is not linked is a no-op.
	Unlink(ctx context.Context, id, relatedID string) error

	// ListRelated retrieves the transactions linked to the given one
	ListRelated(ctx context.Context, id string) ([]*Transaction, error)

	// SumByMonthReference returns per-account raw value sums for every
	// transaction in the period
	SumByMonthReference(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error)
}
