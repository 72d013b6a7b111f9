package category

import (
	"context"
	"errors"
	"testing"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc            func(ctx context.Context, params CreateParams) (*Category, error)
	UpdateFunc            func(ctx context.Context, id string, params UpdateParams) (*Category, error)
	DeleteFunc            func(ctx context.Context, id string) error
	GetByIDFunc           func(ctx context.Context, id string) (*Category, error)
	ListFunc              func(ctx context.Context) ([]*Category, error)
	CountTransactionsFunc func(ctx context.Context, id string) (int64, error)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Category, error) {
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

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) CountTransactions(ctx context.Context, id string) (int64, error) {
	if m.CountTransactionsFunc != nil {
		return m.CountTransactionsFunc(ctx, id)
	}
	return 0, nil
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Category, error) {
				if params.ID == "" {
					t.Error("Create called without a generated ID")
				}
				return &Category{ID: params.ID, Name: params.Name}, nil
			},
		}

		svc := NewService(repo)
		cat, err := svc.CreateCategory(ctx, CreateParams{Name: "Groceries"})
		if err != nil {
			t.Fatalf("CreateCategory() error = %v", err)
		}
		if cat.Name != "Groceries" {
			t.Errorf("Name = %s, want Groceries", cat.Name)
		}
	})

	t.Run("Missing name", func(t *testing.T) {
		svc := NewService(&MockRepository{})
		if _, err := svc.CreateCategory(ctx, CreateParams{}); err == nil {
			t.Error("CreateCategory() accepted empty name")
		}
	})
}

func TestDeleteCategory_GuardedByTransactions(t *testing.T) {
	ctx := context.Background()

	deleted := false
	repo := &MockRepository{
		CountTransactionsFunc: func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	svc := NewService(repo)
	err := svc.DeleteCategory(ctx, "cat-1")

	if !errors.Is(err, ErrCategoryInUse) {
		t.Errorf("DeleteCategory() error = %v, want ErrCategoryInUse", err)
	}
	if deleted {
		t.Error("DeleteCategory() deleted a category that still has transactions")
	}
}

func TestDeleteCategory_NoTransactions(t *testing.T) {
	ctx := context.Background()

	repo := &MockRepository{
		CountTransactionsFunc: func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		},
	}

	svc := NewService(repo)
	if err := svc.DeleteCategory(ctx, "cat-1"); err != nil {
		t.Errorf("DeleteCategory() error = %v, want nil", err)
	}
}

func TestDeleteCategory_NotFoundPropagates(t *testing.T) {
	ctx := context.Background()

	repo := &MockRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return ErrCategoryNotFound
		},
	}

	svc := NewService(repo)
	if err := svc.DeleteCategory(ctx, "missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("DeleteCategory() error = %v, want ErrCategoryNotFound", err)
	}
}
