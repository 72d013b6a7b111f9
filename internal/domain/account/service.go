package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service contains the business logic for account operations
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAccount creates a new account with business validation
func (s *Service) CreateAccount(ctx context.Context, params CreateParams) (*Account, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// UpdateAccount applies a partial update to an account
func (s *Service) UpdateAccount(ctx context.Context, id string, params UpdateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteAccount deletes an account. Deletion is rejected while any
// transaction still references the account; the caller must move those
// transactions first.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	count, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAccountInUse
	}

	return s.repo.Delete(ctx, id)
}

// GetAccount retrieves an account by ID
func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAccounts retrieves all accounts ordered by name
func (s *Service) ListAccounts(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx)
}

// ListAccountsByType retrieves all accounts of the given type
func (s *Service) ListAccountsByType(ctx context.Context, accountType Type) ([]*Account, error) {
	if !IsValidType(accountType) {
		return nil, ErrInvalidType
	}
	return s.repo.ListByType(ctx, accountType)
}

// CalculateBalance returns the sign-adjusted balance for an account: the sum
// of its transaction values, negated for Debit accounts so that spending
// shows as a reduced balance. Credit accounts return the raw sum.
func (s *Service) CalculateBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	total, err := s.repo.SumValues(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if acc.AccountType == TypeDebit {
		return total.Neg(), nil
	}
	return total, nil
}

// TotalForMonth returns the raw (un-negated) sum of the account's transaction
// values inside the given calendar month. Unlike CalculateBalance no sign
// adjustment is applied; the two conventions are kept distinct on purpose.
func (s *Service) TotalForMonth(ctx context.Context, id string, month, year int) (decimal.Decimal, error) {
	if month < 1 || month > 12 {
		return decimal.Zero, errors.New("month must be between 1 and 12")
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return decimal.Zero, err
	}

	// Half-open window: an exclusive upper bound avoids losing boundary
	// timestamps to the store's rounding, which nanosecond tricks do not.
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	return s.repo.SumValuesInRange(ctx, id, from, to)
}

// GetSummary composes the balance, transaction count, and monthly total for
// one account. Month and year may be zero, in which case the monthly total
// is zero.
func (s *Service) GetSummary(ctx context.Context, id string, month, year int) (*Summary, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return nil, err
	}

	balance, err := s.CalculateBalance(ctx, id)
	if err != nil {
		return nil, err
	}

	monthlyTotal := decimal.Zero
	if month > 0 && year > 0 {
		monthlyTotal, err = s.TotalForMonth(ctx, id, month, year)
		if err != nil {
			return nil, err
		}
	}

	return &Summary{
		Account:           acc,
		TotalTransactions: count,
		CurrentBalance:    balance,
		MonthlyTotal:      monthlyTotal,
	}, nil
}

// GetAllSummaries returns a summary per account, ordered by account name.
func (s *Service) GetAllSummaries(ctx context.Context, month, year int) ([]*Summary, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*Summary, 0, len(accounts))
	for _, acc := range accounts {
		summary, err := s.GetSummary(ctx, acc.ID, month, year)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
