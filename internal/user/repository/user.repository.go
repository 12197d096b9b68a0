package repository

import (
	"database/sql"

	"github.com/salvadorperezm/ror-api-creation/pkg/logger"
	"github.com/salvadorperezm/ror-api-creation/store"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByAuthToken resolves an opaque bearer token to its user by exact
// equality. Returns sql.ErrNoRows when no user carries the token.
func (r *UserRepository) FindByAuthToken(token string) (*store.User, error) {
	var u store.User
	err := r.DB.QueryRow("SELECT id, name, email, auth_token FROM users WHERE auth_token = $1", token).
		Scan(&u.ID, &u.Name, &u.Email, &u.AuthToken)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to look up user by auth token: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id int64) (*store.User, error) {
	var u store.User
	err := r.DB.QueryRow("SELECT id, name, email, auth_token FROM users WHERE id = $1", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.AuthToken)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to get user %d: %v", id, err)
		}
		return nil, err
	}
	return &u, nil
}

// Create exists for the seed command; the API itself never writes users.
func (r *UserRepository) Create(name, email, authToken string) (int64, error) {
	var id int64
	err := r.DB.QueryRow(`INSERT INTO users (name, email, auth_token) VALUES ($1, $2, $3) RETURNING id`,
		name, email, authToken).Scan(&id)
	if err != nil {
		logger.Sugar.Errorf("Failed to create user %s: %v", email, err)
	}
	return id, err
}
