package monthref

import "context"

// Repository defines the interface for month reference data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// Create creates a new month reference; returns ErrPeriodExists when the
	// (month, year) pair is already taken
	Create(ctx context.Context, params CreateParams) (*MonthReference, error)

	// Update applies a partial update; returns ErrMonthReferenceNotFound if id is absent
	Update(ctx context.Context, id string, params UpdateParams) (*MonthReference, error)

	// Delete removes a month reference; returns ErrMonthReferenceNotFound if id is absent
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a month reference by its ID
	GetByID(ctx context.Context, id string) (*MonthReference, error)

	// List retrieves all month references ordered by year then month
	List(ctx context.Context) ([]*MonthReference, error)

	// ListActive retrieves active month references ordered by year then month
	ListActive(ctx context.Context) ([]*MonthReference, error)

	// FindByPeriod looks up the reference for a (month, year) pair.
	// Returns (nil, nil) when no reference exists for the period.
	FindByPeriod(ctx context.Context, month, year int) (*MonthReference, error)
}
