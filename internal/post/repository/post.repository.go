package repository

import (
	"database/sql"

	"github.com/salvadorperezm/ror-api-creation/internal/post/model"
	"github.com/salvadorperezm/ror-api-creation/pkg/logger"
)

const selectPost = `SELECT p.id, p.title, p.content, p.published, u.id, u.name, u.email
	FROM posts p JOIN users u ON p.user_id = u.id`

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// ListPublished returns all published posts in insertion order.
func (r *PostRepository) ListPublished() ([]model.PostResponse, error) {
	rows, err := r.DB.Query(selectPost + ` WHERE p.published = TRUE ORDER BY p.id`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list published posts: %v", err)
		return nil, err
	}
	return scanPosts(rows)
}

// ListVisibleTo returns published posts plus the given user's own
// drafts, in insertion order.
func (r *PostRepository) ListVisibleTo(userID int64) ([]model.PostResponse, error) {
	rows, err := r.DB.Query(selectPost+` WHERE p.published = TRUE OR p.user_id = $1 ORDER BY p.id`, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list posts visible to user %d: %v", userID, err)
		return nil, err
	}
	return scanPosts(rows)
}

// FindByID returns sql.ErrNoRows when the post does not exist.
func (r *PostRepository) FindByID(id int64) (*model.PostResponse, error) {
	var p model.PostResponse
	err := r.DB.QueryRow(selectPost+` WHERE p.id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.Author.ID, &p.Author.Name, &p.Author.Email)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to get post %d: %v", id, err)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(title, content string, published bool, userID int64) (int64, error) {
	var id int64
	err := r.DB.QueryRow(`INSERT INTO posts (title, content, published, user_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		title, content, published, userID).Scan(&id)
	if err != nil {
		logger.Sugar.Errorf("Failed to create post: %v", err)
	}
	return id, err
}

func (r *PostRepository) Update(id int64, title, content string, published bool) (int64, error) {
	result, err := r.DB.Exec(`UPDATE posts SET title = $1, content = $2, published = $3 WHERE id = $4`,
		title, content, published, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to update post %d: %v", id, err)
		return 0, err
	}
	return result.RowsAffected()
}

func scanPosts(rows *sql.Rows) ([]model.PostResponse, error) {
	defer rows.Close()

	var posts []model.PostResponse
	for rows.Next() {
		var p model.PostResponse
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.Author.ID, &p.Author.Name, &p.Author.Email); err != nil {
			logger.Sugar.Errorf("Failed to scan post row: %v", err)
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
