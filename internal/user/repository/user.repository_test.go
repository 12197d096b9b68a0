package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByAuthToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, auth_token FROM users WHERE auth_token = \$1`).
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "auth_token"}).
			AddRow(1, "Alice", "alice@example.com", "abc123"))

	repo := NewUserRepository(db)
	user, err := repo.FindByAuthToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByAuthTokenUnknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, auth_token FROM users WHERE auth_token = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	_, err = repo.FindByAuthToken("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(name, email, auth_token\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs("Alice", "alice@example.com", "abc123").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	repo := NewUserRepository(db)
	id, err := repo.Create("Alice", "alice@example.com", "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}
