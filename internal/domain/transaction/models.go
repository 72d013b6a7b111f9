package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrInactiveMonthReference   = errors.New("cannot create transactions for inactive month references")
	ErrSelfLink                 = errors.New("transaction cannot be linked to itself")
	ErrRelatedTransactionAbsent = errors.New("related transaction not found")
)

// Transaction is a single ledger entry. Address and InvoiceData are
// optional and empty when absent.
type Transaction struct {
	ID               string          `json:"id"`
	DateTime         time.Time       `json:"dateTime"`
	ThirdParty       string          `json:"thirdParty"`
	Value            decimal.Decimal `json:"value"`
	Address          string          `json:"address,omitempty"`
	Description      string          `json:"description"`
	InvoiceData      string          `json:"invoiceData,omitempty"`
	AccountID        string          `json:"accountId"`
	CategoryID       string          `json:"categoryId"`
	MonthReferenceID string          `json:"monthReferenceId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// MonthlySummary maps account IDs to the raw sum of transaction values in a
// period. Sums are not adjusted for account type.
type MonthlySummary map[string]decimal.Decimal

type CreateParams struct {
	ID                    string
	DateTime              time.Time
	ThirdParty            string
	Value                 decimal.Decimal
	Address               string
	Description           string
	InvoiceData           string
	AccountID             string
	CategoryID            string
	MonthReferenceID      string
	RelatedTransactionIDs []string
}

func (p CreateParams) Validate() error {
	if p.DateTime.IsZero() {
		return errors.New("transaction date is required")
	}
	if p.ThirdParty == "" {
		return errors.New("third party is required")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	if p.AccountID == "" {
		return errors.New("account id is required")
	}
	if p.CategoryID == "" {
		return errors.New("category id is required")
	}
	if p.MonthReferenceID == "" {
		return errors.New("month reference id is required")
	}
	return nil
}

// UpdateParams carries a partial update. The month reference of a
// transaction is fixed at creation and cannot be changed here.
type UpdateParams struct {
	DateTime    *time.Time
	ThirdParty  *string
	Value       *decimal.Decimal
	Address     *string
	Description *string
	InvoiceData *string
	AccountID   *string
	CategoryID  *string
}

func (p UpdateParams) Validate() error {
	if p.ThirdParty != nil && *p.ThirdParty == "" {
		return errors.New("third party cannot be empty")
	}
	if p.Description != nil && *p.Description == "" {
		return errors.New("description cannot be empty")
	}
	if p.AccountID != nil && *p.AccountID == "" {
		return errors.New("account id cannot be empty")
	}
	if p.CategoryID != nil && *p.CategoryID == "" {
		return errors.New("category id cannot be empty")
	}
	return nil
}

// SearchFilters narrows a transaction search. Month and Year are only
// consulted when MonthReferenceID is unset.
type SearchFilters struct {
	AccountID        string
	CategoryID       string
	MonthReferenceID string
	Month            int
	Year             int
	StartDate        *time.Time
	EndDate          *time.Time
	MinValue         *decimal.Decimal
	MaxValue         *decimal.Decimal
	ThirdParty       string
	Query            string
}

// IsEmpty reports whether no filter was provided at all.
func (f SearchFilters) IsEmpty() bool {
	return f.AccountID == "" &&
		f.CategoryID == "" &&
		f.MonthReferenceID == "" &&
		f.Month == 0 && f.Year == 0 &&
		f.StartDate == nil && f.EndDate == nil &&
		f.MinValue == nil && f.MaxValue == nil &&
		f.ThirdParty == "" &&
		f.Query == ""
}

// hasPredicates reports whether the filters produce at least one search
// predicate once the month/year pair has been resolved (or discarded).
func (f SearchFilters) hasPredicates() bool {
	return f.AccountID != "" ||
		f.CategoryID != "" ||
		f.MonthReferenceID != "" ||
		f.StartDate != nil || f.EndDate != nil ||
		f.MinValue != nil || f.MaxValue != nil ||
		f.ThirdParty != "" ||
		f.Query != ""
}
