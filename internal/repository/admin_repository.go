package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/stemsi/codesprint-backend/internal/model"
)

// AdminRepository handles admin data access.
type AdminRepository struct {
	db DBTX
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an admin by their unique email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Upsert inserts an admin, or replaces the password hash of an existing one.
// Used by the seeding CLI only.
func (r *AdminRepository) Upsert(ctx context.Context, a *model.Admin) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO admins (email, password_hash)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		 RETURNING id, created_at`,
		a.Email, a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt)
}
