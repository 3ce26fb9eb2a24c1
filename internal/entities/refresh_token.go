package entities

import "time"

// RefreshToken is a stored refresh token record. Each row is valid for exactly
// one refresh call: rotation deletes it and inserts a replacement.
type RefreshToken struct {
	ID        string    `json:"id"` // UUID
	Token     string    `json:"-"`  // Signed refresh JWT, looked up by exact match
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
