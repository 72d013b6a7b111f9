package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Type distinguishes how an account's balance is presented: spending on a
// Debit account reduces its displayed balance, while a Credit account shows
// the raw signed sum.
type Type string

const (
	TypeDebit  Type = "Debit"
	TypeCredit Type = "Credit"
)

// Domain errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInUse    = errors.New("account has transactions and cannot be deleted")
	ErrInvalidType     = errors.New("invalid account type")
)

// Account represents a named bucket that owns transactions.
type Account struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AccountType Type      `json:"accountType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Summary composes the balance, the all-time transaction count, and the
// total for a single month (zero when no month was requested).
type Summary struct {
	Account           *Account        `json:"account"`
	TotalTransactions int64           `json:"totalTransactions"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	MonthlyTotal      decimal.Decimal `json:"monthlyTotal"`
}

// CreateParams contains parameters for creating a new account
type CreateParams struct {
	ID          string
	Name        string
	AccountType Type
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("account name is required")
	}
	if !IsValidType(p.AccountType) {
		return ErrInvalidType
	}
	return nil
}

// UpdateParams contains parameters for updating an account
type UpdateParams struct {
	Name        *string
	AccountType *Type
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("account name cannot be empty")
	}
	if p.AccountType != nil && !IsValidType(*p.AccountType) {
		return ErrInvalidType
	}
	return nil
}

// IsValidType checks if the provided account type is valid.
func IsValidType(t Type) bool {
	return t == TypeDebit || t == TypeCredit
}
