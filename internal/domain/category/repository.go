package category

import "context"

// Repository defines the interface for category data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// Create creates a new category
	Create(ctx context.Context, params CreateParams) (*Category, error)

	// Update applies a partial update; returns ErrCategoryNotFound if id is absent
	Update(ctx context.Context, id string, params UpdateParams) (*Category, error)

	// Delete removes a category; returns ErrCategoryNotFound if id is absent
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id string) (*Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*Category, error)

	// CountTransactions returns how many transactions reference the category
	CountTransactions(ctx context.Context, id string) (int64, error)
}
