package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stemsi/codesprint-backend/internal/model"
)

// DBTX is the subset of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("record not found")

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// UniqueViolationError reports which unique field rejected a write.
type UniqueViolationError struct {
	Field      model.UniqueField
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %s (%s)", e.Field, e.Constraint)
}

// registrantConstraints maps constraint names from migrations/ to fields.
var registrantConstraints = map[string]model.UniqueField{
	"registrants_email_key":       model.FieldEmail,
	"registrants_phone_key":       model.FieldPhone,
	"registrants_roll_number_key": model.FieldRollNumber,
}

// registrantColumns maps unique fields to SQL columns. Lookups only ever use
// these fixed names, never caller input.
var registrantColumns = map[model.UniqueField]string{
	model.FieldEmail:      "email",
	model.FieldPhone:      "phone",
	model.FieldRollNumber: "roll_number",
}

// mapRegistrantError converts driver errors into repository errors.
func mapRegistrantError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		field, ok := registrantConstraints[pgErr.ConstraintName]
		if !ok {
			// Unknown constraint: fall back to the column named in the detail.
			field = fieldFromDetail(pgErr.Detail)
		}
		return &UniqueViolationError{Field: field, Constraint: pgErr.ConstraintName}
	}
	return err
}

// fieldFromDetail parses "Key (phone)=(...) already exists." style details.
func fieldFromDetail(detail string) model.UniqueField {
	for field, col := range registrantColumns {
		if strings.HasPrefix(detail, "Key ("+col+")") {
			return field
		}
	}
	return model.FieldEmail
}
