package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"catalog-be/internal/entities"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email unique constraint trips
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(id, email, passwordHash string, name *string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, email, password_hash, name, created_at, updated_at"

// Create inserts a new user into the database
func (r *userRepository) Create(id, email, passwordHash string, name *string) (*entities.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var user entities.User
	err := r.db.QueryRow(query, id, email, passwordHash, name).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	return r.findOne("SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(id string) (*entities.User, error) {
	return r.findOne("SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *userRepository) findOne(query string, arg interface{}) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
