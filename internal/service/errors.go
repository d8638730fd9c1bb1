package service

import (
	"errors"
	"fmt"

	"github.com/stemsi/codesprint-backend/internal/model"
)

// Common service errors.
var (
	ErrNotFound           = errors.New("registrant not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError carries the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// DuplicateError reports the unique field that already holds the value.
type DuplicateError struct {
	Field model.UniqueField
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s is already registered", e.Field)
}
