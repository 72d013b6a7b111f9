package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tally/internal/domain/account"
	"tally/internal/domain/category"
	"tally/internal/domain/monthref"
)

// Service contains the business logic for transaction operations, including
// the symmetric link graph between transactions.
type Service struct {
	repo       Repository
	monthRefs  monthref.Repository
	accounts   account.Repository
	categories category.Repository
}

// NewService creates a new transaction service
func NewService(repo Repository, monthRefs monthref.Repository, accounts account.Repository, categories category.Repository) *Service {
	return &Service{
		repo:       repo,
		monthRefs:  monthRefs,
		accounts:   accounts,
		categories: categories,
	}
}

// CreateTransaction creates a transaction. The target month reference must
// exist and be active. When RelatedTransactionIDs is set, every referenced
// transaction must exist and the link edges are created together with the
// transaction itself.
func (s *Service) CreateTransaction(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	ref, err := s.monthRefs.GetByID(ctx, params.MonthReferenceID)
	if err != nil {
		return nil, err
	}
	if !ref.Active {
		return nil, ErrInactiveMonthReference
	}

	for _, relatedID := range params.RelatedTransactionIDs {
		if relatedID == params.ID {
			return nil, ErrSelfLink
		}
		exists, err := s.repo.Exists(ctx, relatedID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrRelatedTransactionAbsent, relatedID)
		}
	}

	return s.repo.Create(ctx, params)
}

// UpdateTransaction applies a partial update to a transaction
func (s *Service) UpdateTransaction(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteTransaction deletes a transaction and every link edge touching it
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetTransaction retrieves a transaction by ID
func (s *Service) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTransactions retrieves all transactions ordered by date
func (s *Service) ListTransactions(ctx context.Context) ([]*Transaction, error) {
	return s.repo.List(ctx)
}

// SearchTransactions retrieves transactions matching the filters. A search
// with no filters matches nothing. A month/year pair is resolved to its
// month reference first; when no reference exists for the pair, the pair
// simply contributes no predicate.
func (s *Service) SearchTransactions(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
	if filters.IsEmpty() {
		return []*Transaction{}, nil
	}

	if filters.MonthReferenceID == "" && filters.Month != 0 && filters.Year != 0 {
		ref, err := s.monthRefs.FindByPeriod(ctx, filters.Month, filters.Year)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			filters.MonthReferenceID = ref.ID
		}
	}
	filters.Month, filters.Year = 0, 0

	if !filters.hasPredicates() {
		return []*Transaction{}, nil
	}

	return s.repo.Search(ctx, filters)
}

// LinkTransactions links two transactions symmetrically. Both must exist
// and a transaction cannot be linked to itself. Linking an already linked
// pair is a no-op.
func (s *Service) LinkTransactions(ctx context.Context, id, relatedID string) error {
	if id == relatedID {
		return ErrSelfLink
	}

	for _, txID := range []string{id, relatedID} {
		exists, err := s.repo.Exists(ctx, txID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrTransactionNotFound, txID)
		}
	}

	return s.repo.Link(ctx, id, relatedID)
}

// UnlinkTransactions removes the link between two transactions in both
// directions. Unlinking a pair that is not linked is a no-op.
func (s *Service) UnlinkTransactions(ctx context.Context, id, relatedID string) error {
	return s.repo.Unlink(ctx, id, relatedID)
}

// ListRelatedTransactions retrieves the transactions linked to the given one
func (s *Service) ListRelatedTransactions(ctx context.Context, id string) ([]*Transaction, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTransactionNotFound
	}

	return s.repo.ListRelated(ctx, id)
}

// MoveToAccount reassigns a transaction to another account
func (s *Service) MoveToAccount(ctx context.Context, id, accountID string) (*Transaction, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, UpdateParams{AccountID: &accountID})
}

// UpdateCategory reassigns a transaction to another category
func (s *Service) UpdateCategory(ctx context.Context, id, categoryID string) (*Transaction, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, UpdateParams{CategoryID: &categoryID})
}

// GenerateMonthlySummary sums transaction values per account for the given
// period. A period with no month reference yields an empty summary. Sums
// are raw values with no account type adjustment.
func (s *Service) GenerateMonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error) {
	ref, err := s.monthRefs.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return MonthlySummary{}, nil
	}

	sums, err := s.repo.SumByMonthReference(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	summary := make(MonthlySummary, len(sums))
	for accountID, total := range sums {
		summary[accountID] = total
	}
	return summary, nil
}
