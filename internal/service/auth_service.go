package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"catalog-be/internal/entities"
	"catalog-be/internal/jwt"
	"catalog-be/internal/models"
	"catalog-be/internal/repository"
)

var (
	// ErrEmailTaken is returned when registering an already-used email
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials is returned for a bad email or password. It is
	// deliberately the same error for both so callers cannot probe which.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService defines the interface for the authentication session lifecycle
type AuthService interface {
	Register(req *models.RegisterRequest) (*models.AuthResponse, string, error)
	Login(req *models.LoginRequest) (*models.AuthResponse, string, error)
	Refresh(refreshToken string) (accessToken, newRefreshToken string, err error)
	Logout(refreshToken string)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    *jwt.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, tokens *jwt.TokenService) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

// Register creates a new user account and opens a session. The second return
// value is the refresh token, delivered to the client as a cookie.
func (s *authService) Register(req *models.RegisterRequest) (*models.AuthResponse, string, error) {
	email := strings.ToLower(req.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(uuid.NewString(), email, string(hashedPassword), req.Name)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost the race against a concurrent register for the same email
		return nil, "", ErrEmailTaken
	}
	if err != nil {
		return nil, "", err
	}

	return s.openSession(user)
}

// Login authenticates a user and opens a session
func (s *authService) Login(req *models.LoginRequest) (*models.AuthResponse, string, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(req.Email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	return s.openSession(user)
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// new pair is issued. A token can win this exactly once; a replay (or a
// concurrent second call) fails with repository.ErrTokenNotFound.
func (s *authService) Refresh(refreshToken string) (string, string, error) {
	if _, err := s.tokens.VerifyRefresh(refreshToken); err != nil {
		return "", "", err
	}

	stored, err := s.tokenRepo.FindByToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", "", repository.ErrTokenNotFound
	}
	if err != nil {
		return "", "", err
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	err = s.tokenRepo.Rotate(refreshToken, &entities.RefreshToken{
		ID:        uuid.NewString(),
		Token:     pair.RefreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	})
	if err != nil {
		return "", "", err
	}

	return pair.AccessToken, pair.RefreshToken, nil
}

// Logout deletes any stored record for the token. It is idempotent and
// best-effort: an absent token or a store failure does not surface.
func (s *authService) Logout(refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := s.tokenRepo.DeleteByToken(refreshToken); err != nil {
		log.Printf("Logout: failed to delete refresh token: %v", err)
	}
}

func (s *authService) openSession(user *entities.User) (*models.AuthResponse, string, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	err = s.tokenRepo.Create(&entities.RefreshToken{
		ID:        uuid.NewString(),
		Token:     pair.RefreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	})
	if err != nil {
		return nil, "", err
	}

	return &models.AuthResponse{
		User: models.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		AccessToken: pair.AccessToken,
	}, pair.RefreshToken, nil
}
