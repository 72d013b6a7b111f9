package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/domain/account"
	"tally/internal/domain/category"
	"tally/internal/domain/monthref"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc              func(ctx context.Context, params CreateParams) (*Transaction, error)
	UpdateFunc              func(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	DeleteFunc              func(ctx context.Context, id string) error
	GetByIDFunc             func(ctx context.Context, id string) (*Transaction, error)
	ListFunc                func(ctx context.Context) ([]*Transaction, error)
	SearchFunc              func(ctx context.Context, filters SearchFilters) ([]*Transaction, error)
	ExistsFunc              func(ctx context.Context, id string) (bool, error)
	LinkFunc                func(ctx context.Context, id, relatedID string) error
	UnlinkFunc              func(ctx context.Context, id, relatedID string) error
	ListRelatedFunc         func(ctx context.Context, id string) ([]*Transaction, error)
	SumByMonthReferenceFunc func(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) Search(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filters)
	}
	return nil, nil
}

func (m *MockRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockRepository) Link(ctx context.Context, id, relatedID string) error {
	if m.LinkFunc != nil {
		return m.LinkFunc(ctx, id, relatedID)
	}
	return nil
}

func (m *MockRepository) Unlink(ctx context.Context, id, relatedID string) error {
	if m.UnlinkFunc != nil {
		return m.UnlinkFunc(ctx, id, relatedID)
	}
	return nil
}

func (m *MockRepository) ListRelated(ctx context.Context, id string) ([]*Transaction, error) {
	if m.ListRelatedFunc != nil {
		return m.ListRelatedFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) SumByMonthReference(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error) {
	if m.SumByMonthReferenceFunc != nil {
		return m.SumByMonthReferenceFunc(ctx, monthReferenceID)
	}
	return nil, nil
}

// mockMonthRefRepo implements monthref.Repository for the methods this
// service touches
type mockMonthRefRepo struct {
	GetByIDFunc      func(ctx context.Context, id string) (*monthref.MonthReference, error)
	FindByPeriodFunc func(ctx context.Context, month, year int) (*monthref.MonthReference, error)
}

func (m *mockMonthRefRepo) Create(ctx context.Context, params monthref.CreateParams) (*monthref.MonthReference, error) {
	return nil, nil
}

func (m *mockMonthRefRepo) Update(ctx context.Context, id string, params monthref.UpdateParams) (*monthref.MonthReference, error) {
	return nil, nil
}

func (m *mockMonthRefRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockMonthRefRepo) GetByID(ctx context.Context, id string) (*monthref.MonthReference, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, monthref.ErrMonthReferenceNotFound
}

func (m *mockMonthRefRepo) List(ctx context.Context) ([]*monthref.MonthReference, error) {
	return nil, nil
}

func (m *mockMonthRefRepo) ListActive(ctx context.Context) ([]*monthref.MonthReference, error) {
	return nil, nil
}

func (m *mockMonthRefRepo) FindByPeriod(ctx context.Context, month, year int) (*monthref.MonthReference, error) {
	if m.FindByPeriodFunc != nil {
		return m.FindByPeriodFunc(ctx, month, year)
	}
	return nil, nil
}

// mockAccountRepo implements account.Repository for the methods this
// service touches
type mockAccountRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*account.Account, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	return nil, nil
}

func (m *mockAccountRepo) Update(ctx context.Context, id string, params account.UpdateParams) (*account.Account, error) {
	return nil, nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, account.ErrAccountNotFound
}

func (m *mockAccountRepo) List(ctx context.Context) ([]*account.Account, error) { return nil, nil }

func (m *mockAccountRepo) ListByType(ctx context.Context, accountType account.Type) ([]*account.Account, error) {
	return nil, nil
}

func (m *mockAccountRepo) CountTransactions(ctx context.Context, id string) (int64, error) {
	return 0, nil
}

func (m *mockAccountRepo) SumValues(ctx context.Context, id string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (m *mockAccountRepo) SumValuesInRange(ctx context.Context, id string, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// mockCategoryRepo implements category.Repository for the methods this
// service touches
type mockCategoryRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*category.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, id string, params category.UpdateParams) (*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, category.ErrCategoryNotFound
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*category.Category, error) {
	return nil, nil
}

func (m *mockCategoryRepo) CountTransactions(ctx context.Context, id string) (int64, error) {
	return 0, nil
}

func activeMonthRef() *mockMonthRefRepo {
	return &mockMonthRefRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*monthref.MonthReference, error) {
			return &monthref.MonthReference{ID: id, Month: 1, Year: 2024, Active: true}, nil
		},
	}
}

func validCreateParams() CreateParams {
	return CreateParams{
		DateTime:         time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
		ThirdParty:       "Grocery Store",
		Value:            decimal.RequireFromString("42.90"),
		Description:      "Weekly groceries",
		AccountID:        "acc-1",
		CategoryID:       "cat-1",
		MonthReferenceID: "mr-1",
	}
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Transaction, error) {
				if params.ID == "" {
					t.Error("Create called without a generated ID")
				}
				return &Transaction{ID: params.ID, Description: params.Description}, nil
			},
		}

		svc := NewService(repo, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		tx, err := svc.CreateTransaction(ctx, validCreateParams())
		if err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
		if tx.Description != "Weekly groceries" {
			t.Errorf("Description = %s, want Weekly groceries", tx.Description)
		}
	})

	t.Run("Inactive month reference rejected", func(t *testing.T) {
		monthRefs := &mockMonthRefRepo{
			GetByIDFunc: func(ctx context.Context, id string) (*monthref.MonthReference, error) {
				return &monthref.MonthReference{ID: id, Month: 1, Year: 2024, Active: false}, nil
			},
		}
		created := false
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Transaction, error) {
				created = true
				return nil, nil
			},
		}

		svc := NewService(repo, monthRefs, &mockAccountRepo{}, &mockCategoryRepo{})
		_, err := svc.CreateTransaction(ctx, validCreateParams())
		if !errors.Is(err, ErrInactiveMonthReference) {
			t.Errorf("CreateTransaction() error = %v, want ErrInactiveMonthReference", err)
		}
		if created {
			t.Error("CreateTransaction() wrote against an inactive month reference")
		}
	})

	t.Run("Missing month reference rejected", func(t *testing.T) {
		svc := NewService(&MockRepository{}, &mockMonthRefRepo{}, &mockAccountRepo{}, &mockCategoryRepo{})
		if _, err := svc.CreateTransaction(ctx, validCreateParams()); !errors.Is(err, monthref.ErrMonthReferenceNotFound) {
			t.Errorf("CreateTransaction() error = %v, want ErrMonthReferenceNotFound", err)
		}
	})

	t.Run("Missing required fields rejected", func(t *testing.T) {
		svc := NewService(&MockRepository{}, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})

		params := validCreateParams()
		params.Description = ""
		if _, err := svc.CreateTransaction(ctx, params); err == nil {
			t.Error("CreateTransaction() accepted empty description")
		}

		params = validCreateParams()
		params.DateTime = time.Time{}
		if _, err := svc.CreateTransaction(ctx, params); err == nil {
			t.Error("CreateTransaction() accepted zero date")
		}
	})

	t.Run("Related transaction must exist", func(t *testing.T) {
		repo := &MockRepository{
			ExistsFunc: func(ctx context.Context, id string) (bool, error) {
				return false, nil
			},
		}

		svc := NewService(repo, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		params := validCreateParams()
		params.RelatedTransactionIDs = []string{"tx-missing"}
		if _, err := svc.CreateTransaction(ctx, params); !errors.Is(err, ErrRelatedTransactionAbsent) {
			t.Errorf("CreateTransaction() error = %v, want ErrRelatedTransactionAbsent", err)
		}
	})

	t.Run("Related ids cannot contain the transaction itself", func(t *testing.T) {
		svc := NewService(&MockRepository{}, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		params := validCreateParams()
		params.ID = "tx-1"
		params.RelatedTransactionIDs = []string{"tx-1"}
		if _, err := svc.CreateTransaction(ctx, params); !errors.Is(err, ErrSelfLink) {
			t.Errorf("CreateTransaction() error = %v, want ErrSelfLink", err)
		}
	})
}

func TestLinkTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Self link rejected", func(t *testing.T) {
		svc := NewService(&MockRepository{}, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		if err := svc.LinkTransactions(ctx, "tx-1", "tx-1"); !errors.Is(err, ErrSelfLink) {
			t.Errorf("LinkTransactions() error = %v, want ErrSelfLink", err)
		}
	})

	t.Run("Both sides must exist", func(t *testing.T) {
		repo := &MockRepository{
			ExistsFunc: func(ctx context.Context, id string) (bool, error) {
				return id == "tx-1", nil
			},
		}

		svc := NewService(repo, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		if err := svc.LinkTransactions(ctx, "tx-1", "tx-2"); !errors.Is(err, ErrTransactionNotFound) {
			t.Errorf("LinkTransactions() error = %v, want ErrTransactionNotFound", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		linked := false
		repo := &MockRepository{
			ExistsFunc: func(ctx context.Context, id string) (bool, error) {
				return true, nil
			},
			LinkFunc: func(ctx context.Context, id, relatedID string) error {
				linked = true
				return nil
			},
		}

		svc := NewService(repo, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		if err := svc.LinkTransactions(ctx, "tx-1", "tx-2"); err != nil {
			t.Fatalf("LinkTransactions() error = %v", err)
		}
		if !linked {
			t.Error("LinkTransactions() did not reach the repository")
		}
	})
}

func TestListRelatedTransactions_NotFound(t *testing.T) {
	svc := NewService(&MockRepository{}, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
	if _, err := svc.ListRelatedTransactions(context.Background(), "missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("ListRelatedTransactions() error = %v, want ErrTransactionNotFound", err)
	}
}

func TestSearchTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty filters match nothing", func(t *testing.T) {
		repo := &MockRepository{
			SearchFunc: func(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
				t.Error("Search reached the repository with no filters")
				return nil, nil
			},
		}

		svc := NewService(repo, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		got, err := svc.SearchTransactions(ctx, SearchFilters{})
		if err != nil {
			t.Fatalf("SearchTransactions() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("SearchTransactions() returned %d results, want 0", len(got))
		}
	})

	t.Run("Month and year resolve to a month reference", func(t *testing.T) {
		monthRefs := &mockMonthRefRepo{
			FindByPeriodFunc: func(ctx context.Context, month, year int) (*monthref.MonthReference, error) {
				return &monthref.MonthReference{ID: "mr-2024-03", Month: month, Year: year, Active: true}, nil
			},
		}
		repo := &MockRepository{
			SearchFunc: func(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
				if filters.MonthReferenceID != "mr-2024-03" {
					t.Errorf("MonthReferenceID = %s, want mr-2024-03", filters.MonthReferenceID)
				}
				if filters.Month != 0 || filters.Year != 0 {
					t.Error("month/year pair passed through after resolution")
				}
				return []*Transaction{{ID: "tx-1"}}, nil
			},
		}

		svc := NewService(repo, monthRefs, &mockAccountRepo{}, &mockCategoryRepo{})
		got, err := svc.SearchTransactions(ctx, SearchFilters{Month: 3, Year: 2024})
		if err != nil {
			t.Fatalf("SearchTransactions() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("SearchTransactions() returned %d results, want 1", len(got))
		}
	})

	t.Run("Explicit month reference wins over month and year", func(t *testing.T) {
		monthRefs := &mockMonthRefRepo{
			FindByPeriodFunc: func(ctx context.Context, month, year int) (*monthref.MonthReference, error) {
				t.Error("FindByPeriod called although MonthReferenceID was set")
				return nil, nil
			},
		}
		repo := &MockRepository{
			SearchFunc: func(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
				if filters.MonthReferenceID != "mr-explicit" {
					t.Errorf("MonthReferenceID = %s, want mr-explicit", filters.MonthReferenceID)
				}
				return nil, nil
			},
		}

		svc := NewService(repo, monthRefs, &mockAccountRepo{}, &mockCategoryRepo{})
		if _, err := svc.SearchTransactions(ctx, SearchFilters{MonthReferenceID: "mr-explicit", Month: 3, Year: 2024}); err != nil {
			t.Fatalf("SearchTransactions() error = %v", err)
		}
	})

	t.Run("Unknown period as only filter matches nothing", func(t *testing.T) {
		repo := &MockRepository{
			SearchFunc: func(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
				t.Error("Search reached the repository with no effective predicates")
				return nil, nil
			},
		}

		svc := NewService(repo, &mockMonthRefRepo{}, &mockAccountRepo{}, &mockCategoryRepo{})
		got, err := svc.SearchTransactions(ctx, SearchFilters{Month: 3, Year: 2024})
		if err != nil {
			t.Fatalf("SearchTransactions() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("SearchTransactions() returned %d results, want 0", len(got))
		}
	})

	t.Run("Unknown period alongside other filters is dropped", func(t *testing.T) {
		repo := &MockRepository{
			SearchFunc: func(ctx context.Context, filters SearchFilters) ([]*Transaction, error) {
				if filters.MonthReferenceID != "" {
					t.Errorf("MonthReferenceID = %s, want empty", filters.MonthReferenceID)
				}
				if filters.AccountID != "acc-1" {
					t.Errorf("AccountID = %s, want acc-1", filters.AccountID)
				}
				return nil, nil
			},
		}

		svc := NewService(repo, &mockMonthRefRepo{}, &mockAccountRepo{}, &mockCategoryRepo{})
		if _, err := svc.SearchTransactions(ctx, SearchFilters{AccountID: "acc-1", Month: 3, Year: 2024}); err != nil {
			t.Fatalf("SearchTransactions() error = %v", err)
		}
	})
}

func TestMoveToAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Target account must exist", func(t *testing.T) {
		svc := NewService(&MockRepository{}, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		if _, err := svc.MoveToAccount(ctx, "tx-1", "acc-missing"); !errors.Is(err, account.ErrAccountNotFound) {
			t.Errorf("MoveToAccount() error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		accounts := &mockAccountRepo{
			GetByIDFunc: func(ctx context.Context, id string) (*account.Account, error) {
				return &account.Account{ID: id, Name: "Savings", AccountType: account.TypeDebit}, nil
			},
		}
		repo := &MockRepository{
			UpdateFunc: func(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
				if params.AccountID == nil || *params.AccountID != "acc-2" {
					t.Error("Update called without the target account id")
				}
				return &Transaction{ID: id, AccountID: *params.AccountID}, nil
			},
		}

		svc := NewService(repo, activeMonthRef(), accounts, &mockCategoryRepo{})
		tx, err := svc.MoveToAccount(ctx, "tx-1", "acc-2")
		if err != nil {
			t.Fatalf("MoveToAccount() error = %v", err)
		}
		if tx.AccountID != "acc-2" {
			t.Errorf("AccountID = %s, want acc-2", tx.AccountID)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Target category must exist", func(t *testing.T) {
		svc := NewService(&MockRepository{}, activeMonthRef(), &mockAccountRepo{}, &mockCategoryRepo{})
		if _, err := svc.UpdateCategory(ctx, "tx-1", "cat-missing"); !errors.Is(err, category.ErrCategoryNotFound) {
			t.Errorf("UpdateCategory() error = %v, want ErrCategoryNotFound", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		categories := &mockCategoryRepo{
			GetByIDFunc: func(ctx context.Context, id string) (*category.Category, error) {
				return &category.Category{ID: id, Name: "Transport"}, nil
			},
		}
		repo := &MockRepository{
			UpdateFunc: func(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
				if params.CategoryID == nil || *params.CategoryID != "cat-2" {
					t.Error("Update called without the target category id")
				}
				return &Transaction{ID: id, CategoryID: *params.CategoryID}, nil
			},
		}

		svc := NewService(repo, activeMonthRef(), &mockAccountRepo{}, categories)
		tx, err := svc.UpdateCategory(ctx, "tx-1", "cat-2")
		if err != nil {
			t.Fatalf("UpdateCategory() error = %v", err)
		}
		if tx.CategoryID != "cat-2" {
			t.Errorf("CategoryID = %s, want cat-2", tx.CategoryID)
		}
	})
}

func TestGenerateMonthlySummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing period yields empty summary", func(t *testing.T) {
		svc := NewService(&MockRepository{}, &mockMonthRefRepo{}, &mockAccountRepo{}, &mockCategoryRepo{})
		summary, err := svc.GenerateMonthlySummary(ctx, 3, 2024)
		if err != nil {
			t.Fatalf("GenerateMonthlySummary() error = %v", err)
		}
		if len(summary) != 0 {
			t.Errorf("summary has %d entries, want 0", len(summary))
		}
	})

	t.Run("Raw sums grouped by account", func(t *testing.T) {
		monthRefs := &mockMonthRefRepo{
			FindByPeriodFunc: func(ctx context.Context, month, year int) (*monthref.MonthReference, error) {
				return &monthref.MonthReference{ID: "mr-1", Month: month, Year: year, Active: true}, nil
			},
		}
		repo := &MockRepository{
			SumByMonthReferenceFunc: func(ctx context.Context, monthReferenceID string) (map[string]decimal.Decimal, error) {
				return map[string]decimal.Decimal{
					"acc-1": decimal.RequireFromString("150.00"),
					"acc-2": decimal.RequireFromString("-20.50"),
				}, nil
			},
		}

		svc := NewService(repo, monthRefs, &mockAccountRepo{}, &mockCategoryRepo{})
		summary, err := svc.GenerateMonthlySummary(ctx, 3, 2024)
		if err != nil {
			t.Fatalf("GenerateMonthlySummary() error = %v", err)
		}
		if !summary["acc-1"].Equal(decimal.RequireFromString("150.00")) {
			t.Errorf("acc-1 = %s, want 150.00", summary["acc-1"])
		}
		if !summary["acc-2"].Equal(decimal.RequireFromString("-20.50")) {
			t.Errorf("acc-2 = %s, want -20.50", summary["acc-2"])
		}
	})
}
