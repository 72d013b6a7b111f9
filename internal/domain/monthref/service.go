package monthref

import (
	"context"

	"github.com/google/uuid"
)

// Service contains the business logic for month reference operations
type Service struct {
	repo Repository
}

// NewService creates a new month reference service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateMonthReference creates a new accounting period. New periods are
// active unless the caller says otherwise.
func (s *Service) CreateMonthReference(ctx context.Context, params CreateParams) (*MonthReference, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}
	if params.Active == nil {
		active := true
		params.Active = &active
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// UpdateMonthReference applies a partial update to a month reference
func (s *Service) UpdateMonthReference(ctx context.Context, id string, params UpdateParams) (*MonthReference, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteMonthReference deletes a month reference
func (s *Service) DeleteMonthReference(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetMonthReference retrieves a month reference by ID
func (s *Service) GetMonthReference(ctx context.Context, id string) (*MonthReference, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMonthReferences retrieves all month references ordered by period
func (s *Service) ListMonthReferences(ctx context.Context) ([]*MonthReference, error) {
	return s.repo.List(ctx)
}

// ListActiveMonthReferences retrieves the periods currently open for entry
func (s *Service) ListActiveMonthReferences(ctx context.Context) ([]*MonthReference, error) {
	return s.repo.ListActive(ctx)
}

// FindByPeriod looks up the reference for a (month, year) pair. A missing
// period is reported as ErrMonthReferenceNotFound.
func (s *Service) FindByPeriod(ctx context.Context, month, year int) (*MonthReference, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	ref, err := s.repo.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, ErrMonthReferenceNotFound
	}
	return ref, nil
}

// FindOrCreate returns the reference for a period, creating it as active
// when it does not exist yet.
func (s *Service) FindOrCreate(ctx context.Context, month, year int) (*MonthReference, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	ref, err := s.repo.FindByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		return ref, nil
	}

	return s.CreateMonthReference(ctx, CreateParams{Month: month, Year: year})
}

// ToggleActive flips the active flag of a month reference
func (s *Service) ToggleActive(ctx context.Context, id string) (*MonthReference, error) {
	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active := !ref.Active
	return s.repo.Update(ctx, id, UpdateParams{Active: &active})
}
