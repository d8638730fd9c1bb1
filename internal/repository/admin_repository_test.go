package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stemsi/codesprint-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAdminRepository(mock)

	mock.ExpectQuery("FROM admins WHERE email").
		WithArgs("ops@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(1, "ops@x.com", "$2a$10$hash", time.Now()))

	a, err := repo.GetByEmail(context.Background(), "ops@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, "$2a$10$hash", a.PasswordHash)

	mock.ExpectQuery("FROM admins WHERE email").
		WithArgs("ghost@x.com").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewAdminRepository(mock)

	mock.ExpectQuery("ON CONFLICT \\(email\\) DO UPDATE").
		WithArgs("ops@x.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))

	a := &model.Admin{Email: "ops@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Upsert(context.Background(), a))
	assert.Equal(t, 5, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
