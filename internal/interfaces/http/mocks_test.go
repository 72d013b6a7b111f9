package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/domain/account"
	"tally/internal/domain/category"
	"tally/internal/domain/monthref"
	"tally/internal/domain/transaction"
)

// Func-field mock repositories shared by the handler tests. Handlers talk to
// services, so the tests wire real services onto these mocks.

type mockAccountRepo struct {
	CreateFunc            func(ctx context.Context, params account.CreateParams) (*account.Account, error)
	UpdateFunc            func(ctx context.Context, id string, params account.UpdateParams) (*account.Account, error)
	DeleteFunc            func(ctx context.Context, id string) error
	GetByIDFunc           func(ctx context.Context, id string) (*account.Account, error)
	ListFunc              func(ctx context.Context) ([]*account.Account, error)
	ListByTypeFunc        func(ctx context.Context, accountType account.Type) ([]*account.Account, error)
	CountTransactionsFunc func(ctx context.Context, id string) (int64, error)
	SumValuesFunc         func(ctx context.Context, id string) (decimal.Decimal, error)
	SumValuesInRangeFunc  func(ctx context.Context, id string, from, to time.Time) (decimal.Decimal, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockAccountRepo) Update(ctx context.Context, id string, params account.UpdateParams) (*account.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, account.ErrAccountNotFound
}

func (m *mockAccountRepo) List(ctx context.Context) ([]*account.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockAccountRepo) ListByType(ctx context.Context, accountType account.Type) ([]*account.Account, error) {
	if m.ListByTypeFunc != nil {
		return m.ListByTypeFunc(ctx, accountType)
	}
	return nil, nil
}

func (m *mockAccountRepo) CountTransactions(ctx context.Context, id string) (int64, error) {
	if m.CountTransactionsFunc != nil {
		return m.CountTransactionsFunc(ctx, id)
	}
	return 0, nil
}

func (m *mockAccountRepo) SumValues(ctx context.Context, id string) (decimal.Decimal, error) {
	if m.SumValuesFunc != nil {
		return m.SumValuesFunc(ctx, id)
	}
	return decimal.Zero, nil
}

func (m *mockAccountRepo) SumValuesInRange(ctx context.Context, id string, from, to time.Time) (decimal.Decimal, error) {
	if m.SumValuesInRangeFunc != nil {
		return m.SumValuesInRangeFunc(ctx, id, from, to)
	}
	return decimal.Zero, nil
}

type mockCategoryRepo struct {
	CreateFunc            func(ctx context.Context, params category.CreateParams) (*category.Category, error)
	UpdateFunc            func(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error)
	DeleteFunc            func(ctx context.Context, id string) error
	GetByIDFunc           func(ctx context.Context, id string) (*category.Category, error)
	ListFunc              func(ctx context.Context) ([]*category.Category, error)
	CountTransactionsFunc func(ctx context.Context, id string) (int64, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, category.ErrCategoryNotFound
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepo) CountTransactions(ctx context.Context, id string) (int64, error) {
	if m.CountTransactionsFunc != nil {
		return m.CountTransactionsFunc(ctx, id)
	}
	return 0, nil
}

type mockMonthRefRepo struct {
	CreateFunc       func(ctx context.Context, params monthref.CreateParams) (*monthref.MonthReference, error)
	UpdateFunc       func(ctx context.Context, id string, params monthref.UpdateParams) (*monthref.MonthReference, error)
	DeleteFunc       func(ctx context.Context, id string) error
	GetByIDFunc      func(ctx context.Context, id string) (*monthref.MonthReference, error)
	ListFunc         func(ctx context.Context) ([]*monthref.MonthReference, error)
	ListActiveFunc   func(ctx context.Context) ([]*monthref.MonthReference, error)
	FindByPeriodFunc func(ctx context.Context, month, year int) (*monthref.MonthReference, error)
}

func (m *mockMonthRefRepo) Create(ctx context.Context, params monthref.CreateParams) (*monthref.MonthReference, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockMonthRefRepo) Update(ctx context.Context, id string, params monthref.UpdateParams) (*monthref.MonthReference, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockMonthRefRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockMonthRefRepo) GetByID(ctx context.Context, id string) (*monthref.MonthReference, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, monthref.ErrMonthReferenceNotFound
}

func (m *mockMonthRefRepo) List(ctx context.Context) ([]*monthref.MonthReference, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockMonthRefRepo) ListActive(ctx context.Context) ([]*monthref.MonthReference, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockMonthRefRepo) FindByPeriod(ctx context.Context, month, year int) (*monthref.MonthReference, error) {
	if m.FindByPeriodFunc != nil {
		return m.FindByPeriodFunc(ctx, month, year)
	}
	return nil, nil
}

type mockTransactionRepo struct {
	CreateFunc              func(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
	UpdateFunc              func(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error)
	DeleteFunc              func(ctx context.Context, id string) error
	GetByIDFunc             func(ctx context.Context, id string) (*transaction.Transaction, error)
	ListFunc                func(ctx context.Context) ([]*transaction.Transaction, error)
	SearchFunc              func(ctx context.Context, filters transaction.SearchFilters) ([]*transaction.Transaction, error)
	ExistsFunc              func(ctx context.Context, id string) (bool, error)
	LinkFunc                func(ctx context.Context, id, relatedID string) error
	UnlinkFunc              func(ctx context.Context, id, relatedID string) error
	ListRelatedFunc         func(ctx context.Context, id string) ([]*transaction.Transaction, error)
	SumByMonthReferenceFunc func(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error)
}

func (m *mockTransactionRepo) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, transaction.ErrTransactionNotFound
}

func (m *mockTransactionRepo) List(ctx context.Context) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Search(ctx context.Context, filters transaction.SearchFilters) ([]*transaction.Transaction, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filters)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockTransactionRepo) Link(ctx context.Context, id, relatedID string) error {
	if m.LinkFunc != nil {
		return m.LinkFunc(ctx, id, relatedID)
	}
	return nil
}

func (m *mockTransactionRepo) Unlink(ctx context.Context, id, relatedID string) error {
	if m.UnlinkFunc != nil {
		return m.UnlinkFunc(ctx, id, relatedID)
	}
	return nil
}

func (m *mockTransactionRepo) ListRelated(ctx context.Context, id string) ([]*transaction.Transaction, error) {
	if m.ListRelatedFunc != nil {
		return m.ListRelatedFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTransactionRepo) SumByMonthReference(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error) {
	if m.SumByMonthReferenceFunc != nil {
		return m.SumByMonthReferenceFunc(ctx, monthReferenceID)
	}
	return nil, nil
}
