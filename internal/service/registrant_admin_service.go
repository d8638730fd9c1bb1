package service

import (
	"context"

	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/validator"
)

// RegistrantAdminService backs the authenticated registrant management endpoints.
type RegistrantAdminService struct {
	store RegistrantStore
}

// NewRegistrantAdminService creates a new RegistrantAdminService.
func NewRegistrantAdminService(store RegistrantStore) *RegistrantAdminService {
	return &RegistrantAdminService{store: store}
}

// List returns every registrant, newest first.
func (s *RegistrantAdminService) List(ctx context.Context) ([]model.Registrant, error) {
	registrants, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if registrants == nil {
		registrants = []model.Registrant{}
	}
	return registrants, nil
}

// Update overwrites all five mutable fields of registrant id. Uniqueness is
// enforced against the other rows, in the same order as registration.
func (s *RegistrantAdminService) Update(ctx context.Context, id int, req model.UpdateRegistrantRequest) (*model.Registrant, error) {
	validator.TrimStrings(&req)
	if fe := validator.First(&req); fe != nil {
		return nil, &ValidationError{Field: fe.Field, Message: fe.Message}
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.RollNumber = req.RollNumber
	existing.Branch = req.Branch

	if err := checkUnique(ctx, s.store, existing, id); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, mapStoreError(err)
	}
	return existing, nil
}

// Delete permanently removes registrant id.
func (s *RegistrantAdminService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	return nil
}
