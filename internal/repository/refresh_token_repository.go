package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"catalog-be/internal/entities"
)

// ErrTokenNotFound is returned when no stored refresh token matches, the
// stored record has expired, or the token was already consumed by rotation.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the interface for refresh token storage
type RefreshTokenRepository interface {
	Create(token *entities.RefreshToken) error
	FindByToken(token string) (*entities.RefreshToken, error)
	// Rotate atomically deletes the old token and stores its replacement.
	// Exactly one of two concurrent rotations of the same token succeeds;
	// the loser gets ErrTokenNotFound.
	Rotate(oldToken string, newToken *entities.RefreshToken) error
	DeleteByToken(token string) error
}

type refreshTokenRepository struct {
	db *sql.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *sql.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create inserts a new refresh token record
func (r *refreshTokenRepository) Create(token *entities.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, token.ID, token.Token, token.UserID, token.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// FindByToken looks up a stored token by exact match. Expired rows are purged
// lazily and reported as not found.
func (r *refreshTokenRepository) FindByToken(token string) (*entities.RefreshToken, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var rt entities.RefreshToken
	err := r.db.QueryRow(query, token).Scan(
		&rt.ID,
		&rt.Token,
		&rt.UserID,
		&rt.ExpiresAt,
		&rt.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	if time.Now().After(rt.ExpiresAt) {
		_, _ = r.db.Exec("DELETE FROM refresh_tokens WHERE id = $1", rt.ID)
		return nil, ErrTokenNotFound
	}

	return &rt, nil
}

// Rotate deletes the old token and inserts the new one in a single
// transaction. A zero-row delete means the old token was never stored or has
// already been used, so the whole rotation fails.
func (r *refreshTokenRepository) Rotate(oldToken string, newToken *entities.RefreshToken) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM refresh_tokens WHERE token = $1", oldToken)
	if err != nil {
		return fmt.Errorf("failed to delete old refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTokenNotFound
	}

	_, err = tx.Exec(`
		INSERT INTO refresh_tokens (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
	`, newToken.ID, newToken.Token, newToken.UserID, newToken.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to store new refresh token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}
	return nil
}

// DeleteByToken removes a stored token if present. Absence is not an error.
func (r *refreshTokenRepository) DeleteByToken(token string) error {
	_, err := r.db.Exec("DELETE FROM refresh_tokens WHERE token = $1", token)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
