package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postColumns = []string{"id", "title", "content", "published", "u.id", "u.name", "u.email"}

func TestListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM posts p JOIN users u ON p.user_id = u.id WHERE p.published = TRUE ORDER BY p.id`).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(1, "Hola Mundo", "Content", true, 1, "Alice", "alice@example.com").
			AddRow(2, "Hola Rails", "Content", true, 2, "Bob", "bob@example.com"))

	repo := NewPostRepository(db)
	posts, err := repo.ListPublished()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, "Hola Mundo", posts[0].Title)
	assert.Equal(t, "alice@example.com", posts[0].Author.Email)
	assert.Equal(t, int64(2), posts[1].Author.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibleTo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) WHERE p.published = TRUE OR p.user_id = \$1 ORDER BY p.id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(1, "Draft", "Content", false, 1, "Alice", "alice@example.com"))

	repo := NewPostRepository(db)
	posts, err := repo.ListVisibleTo(1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].Published)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) WHERE p.id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(7, "Title", "Content", true, 1, "Alice", "alice@example.com"))

	repo := NewPostRepository(db)
	post, err := repo.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), post.ID)
	assert.Equal(t, "Alice", post.Author.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) WHERE p.id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	repo := NewPostRepository(db)
	_, err = repo.FindByID(99)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO posts \(title, content, published, user_id\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING id`).
		WithArgs("Title", "Content", false, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	repo := NewPostRepository(db)
	id, err := repo.Create("Title", "Content", false, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE posts SET title = \$1, content = \$2, published = \$3 WHERE id = \$4`).
		WithArgs("New", "Content", true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostRepository(db)
	affected, err := repo.Update(7, "New", "Content", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.NoError(t, mock.ExpectationsWereMet())
}
