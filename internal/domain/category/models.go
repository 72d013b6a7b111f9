package category

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has transactions and cannot be deleted")
)

// Category is a user-defined label for grouping transactions by purpose.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateParams struct {
	ID   string
	Name string
}

func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("category name is required")
	}
	return nil
}

type UpdateParams struct {
	Name *string
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("category name cannot be empty")
	}
	return nil
}
