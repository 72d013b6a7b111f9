package monthref

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrMonthReferenceNotFound = errors.New("month reference not found")
	ErrPeriodExists           = errors.New("month reference already exists for this period")
)

// MonthReference is an accounting period. Transactions can only be created
// against an active period.
type MonthReference struct {
	ID        string    `json:"id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateParams struct {
	ID     string
	Month  int
	Year   int
	Active *bool
}

func (p CreateParams) Validate() error {
	return validatePeriod(p.Month, p.Year)
}

type UpdateParams struct {
	Month  *int
	Year   *int
	Active *bool
}

func (p UpdateParams) Validate() error {
	if p.Month != nil {
		if *p.Month < 1 || *p.Month > 12 {
			return fmt.Errorf("month must be between 1 and 12, got %d", *p.Month)
		}
	}
	if p.Year != nil && *p.Year < 1 {
		return fmt.Errorf("year must be positive, got %d", *p.Year)
	}
	return nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1 {
		return fmt.Errorf("year must be positive, got %d", year)
	}
	return nil
}
