package models

// UserInfo is the public view of a user (no password hash, no timestamps)
type UserInfo struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

// AuthResponse represents the response after successful registration or login.
// The refresh token travels in an HTTP-only cookie, never in the body.
type AuthResponse struct {
	User        UserInfo `json:"user"`
	AccessToken string   `json:"accessToken"`
}

// RefreshResponse represents the response after a successful token refresh
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}
