package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for account data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, params CreateParams) (*Account, error)

	// Update applies a partial update; returns ErrAccountNotFound if id is absent
	Update(ctx context.Context, id string, params UpdateParams) (*Account, error)

	// Delete removes an account; returns ErrAccountNotFound if id is absent
	Delete(ctx context.Context, id string) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id string) (*Account, error)

	// List retrieves all accounts ordered by name
	List(ctx context.Context) ([]*Account, error)

	// ListByType retrieves all accounts of the given type ordered by name
	ListByType(ctx context.Context, accountType Type) ([]*Account, error)

	// CountTransactions returns how many transactions reference the account
	CountTransactions(ctx context.Context, id string) (int64, error)

	// SumValues returns the raw signed sum of all transaction values for the account
	SumValues(ctx context.Context, id string) (decimal.Decimal, error)

	// SumValuesInRange returns the raw signed sum of transaction values for the
	// account with date_time in the half-open window [from, to)
	SumValuesInRange(ctx context.Context, id string, from, to time.Time) (decimal.Decimal, error)
}
