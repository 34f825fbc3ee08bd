package repository

import (
	"database/sql"
	"errors"

	"bookshelf-api/models"

	"github.com/lib/pq"
)

// ErrUsernameTaken is returned when an insert hits the users_username_key
// unique constraint. The constraint, not a prior read, is what guarantees
// at most one of two concurrent registrations succeeds.
var ErrUsernameTaken = errors.New("username already taken")

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) CreateUser(username, passwordHash string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, username, password_hash, created_at`,
		username, passwordHash).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(`
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1`, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
