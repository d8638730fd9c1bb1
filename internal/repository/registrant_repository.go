package repository

import (
	"context"
	"fmt"

	"github.com/stemsi/codesprint-backend/internal/model"
)

const registrantColumnsSQL = `id, name, email, phone, roll_number, branch, created_at`

// RegistrantRepository handles registrant data access.
type RegistrantRepository struct {
	db DBTX
}

// NewRegistrantRepository creates a new RegistrantRepository.
func NewRegistrantRepository(db DBTX) *RegistrantRepository {
	return &RegistrantRepository{db: db}
}

// Create inserts a new registrant and fills in its id and created_at.
// The table's unique constraints are the race-safe enforcement point.
func (r *RegistrantRepository) Create(ctx context.Context, reg *model.Registrant) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO registrants (name, email, phone, roll_number, branch)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		reg.Name, reg.Email, reg.Phone, reg.RollNumber, reg.Branch,
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		return mapRegistrantError(err)
	}
	return nil
}

// GetByID retrieves a registrant by ID.
func (r *RegistrantRepository) GetByID(ctx context.Context, id int) (*model.Registrant, error) {
	reg := &model.Registrant{}
	err := r.db.QueryRow(ctx,
		`SELECT `+registrantColumnsSQL+` FROM registrants WHERE id = $1`, id,
	).Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.RollNumber, &reg.Branch, &reg.CreatedAt)
	if err != nil {
		return nil, mapRegistrantError(err)
	}
	return reg, nil
}

// ExistsBy reports whether another registrant holds value in the given
// unique field. excludeID skips one row (0 skips none).
func (r *RegistrantRepository) ExistsBy(ctx context.Context, field model.UniqueField, value string, excludeID int) (bool, error) {
	col, ok := registrantColumns[field]
	if !ok {
		return false, fmt.Errorf("unknown unique field %q", field)
	}

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrants WHERE `+col+` = $1 AND id <> $2)`,
		value, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns all registrants, newest first.
func (r *RegistrantRepository) List(ctx context.Context) ([]model.Registrant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+registrantColumnsSQL+` FROM registrants ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrants := []model.Registrant{}
	for rows.Next() {
		var reg model.Registrant
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Phone, &reg.RollNumber, &reg.Branch, &reg.CreatedAt); err != nil {
			return nil, err
		}
		registrants = append(registrants, reg)
	}
	return registrants, rows.Err()
}

// Count returns the number of registrants.
func (r *RegistrantRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrants`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update overwrites all mutable fields of a registrant.
func (r *RegistrantRepository) Update(ctx context.Context, reg *model.Registrant) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE registrants SET name = $1, email = $2, phone = $3, roll_number = $4, branch = $5
		 WHERE id = $6`,
		reg.Name, reg.Email, reg.Phone, reg.RollNumber, reg.Branch, reg.ID,
	)
	if err != nil {
		return mapRegistrantError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a registrant by ID.
func (r *RegistrantRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM registrants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
