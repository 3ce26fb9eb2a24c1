package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification: bad
// signature, wrong signing method, malformed, or expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity claims carried by both access and refresh tokens
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenPair holds a freshly signed access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService issues and verifies signed access and refresh tokens. Access
// and refresh tokens use distinct secrets and distinct lifetimes. The service
// is stateless; expiry is embedded in the token and enforced on verification.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL reports the configured refresh token lifetime
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// GeneratePair signs a new access/refresh token pair for the given identity
func (s *TokenService) GeneratePair(userID, email string) (*TokenPair, error) {
	accessToken, err := s.sign(userID, email, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(userID, email, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess verifies a token against the access secret
func (s *TokenService) VerifyAccess(token string) (*Claims, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefresh verifies a token against the refresh secret
func (s *TokenService) VerifyRefresh(token string) (*Claims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *TokenService) sign(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			// iat/exp have second precision; the jti keeps two tokens for
			// the same identity distinct even when issued in the same second
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *TokenService) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
