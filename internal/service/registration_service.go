package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stemsi/codesprint-backend/internal/repository"
	"github.com/stemsi/codesprint-backend/internal/validator"
)

// RegistrantStore is the persistence the registration and admin services need.
type RegistrantStore interface {
	Create(ctx context.Context, reg *model.Registrant) error
	GetByID(ctx context.Context, id int) (*model.Registrant, error)
	ExistsBy(ctx context.Context, field model.UniqueField, value string, excludeID int) (bool, error)
	List(ctx context.Context) ([]model.Registrant, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, reg *model.Registrant) error
	Delete(ctx context.Context, id int) error
}

// RegistrationService admits new registrants: validate, deduplicate,
// persist, then confirm by mail.
type RegistrationService struct {
	store      RegistrantStore
	dispatcher *Dispatcher
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(store RegistrantStore, dispatcher *Dispatcher) *RegistrationService {
	return &RegistrationService{store: store, dispatcher: dispatcher}
}

// Submit runs the admission pipeline up to persistence. Nothing is written
// when validation or a uniqueness check fails.
func (s *RegistrationService) Submit(ctx context.Context, req model.RegisterRequest) (*model.RegistrantSummary, error) {
	validator.TrimStrings(&req)
	if fe := validator.First(&req); fe != nil {
		return nil, &ValidationError{Field: fe.Field, Message: fe.Message}
	}

	reg := &model.Registrant{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		RollNumber: req.RollNumber,
		Branch:     req.Branch,
	}

	if err := checkUnique(ctx, s.store, reg, 0); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, reg); err != nil {
		return nil, mapStoreError(err)
	}

	summary := reg.Summary()
	return &summary, nil
}

// ConfirmAsync queues the confirmation mail without waiting for it. Call
// after the response has been written.
func (s *RegistrationService) ConfirmAsync(summary model.RegistrantSummary) {
	s.dispatcher.Go("registration_confirmation", func(ctx context.Context, n Notifier) error {
		return n.RegistrationConfirmed(ctx, summary)
	})
}

// Count returns the number of registrants.
func (s *RegistrationService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// EmailExists reports whether email is already registered.
func (s *RegistrationService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.store.ExistsBy(ctx, model.FieldEmail, email, 0)
}

// checkUnique probes each unique field in fixed order and stops at the first
// collision. These checks are advisory; the insert is the real guard.
func checkUnique(ctx context.Context, store RegistrantStore, reg *model.Registrant, excludeID int) error {
	for _, field := range model.UniqueFields {
		exists, err := store.ExistsBy(ctx, field, reg.Value(field), excludeID)
		if err != nil {
			return fmt.Errorf("check %s: %w", field, err)
		}
		if exists {
			return &DuplicateError{Field: field}
		}
	}
	return nil
}

// mapStoreError translates repository errors into the service taxonomy.
func mapStoreError(err error) error {
	var uv *repository.UniqueViolationError
	if errors.As(err, &uv) {
		return &DuplicateError{Field: uv.Field}
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
