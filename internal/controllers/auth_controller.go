package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-be/internal/jwt"
	"catalog-be/internal/models"
	"catalog-be/internal/repository"
	"catalog-be/internal/service"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	authService  service.AuthService
	refreshTTL   time.Duration
	secureCookie bool // set when running in production
}

func NewAuthController(authService service.AuthService, refreshTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		refreshTTL:   refreshTTL,
		secureCookie: secureCookie,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": err.Error(),
		})
		return
	}

	response, refreshToken, err := ac.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		log.Printf("Register error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ac.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": err.Error(),
		})
		return
	}

	response, refreshToken, err := ac.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ac.setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, response)
}

// Refresh handles POST /api/auth/refresh. It reads the refresh token from the
// cookie, rotates it, and returns a new access token.
func (ac *AuthController) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No refresh token provided"})
		return
	}

	accessToken, newRefreshToken, err := ac.authService.Refresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, repository.ErrTokenNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}
		log.Printf("Refresh token error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ac.setRefreshCookie(c, newRefreshToken)
	c.JSON(http.StatusOK, models.RefreshResponse{AccessToken: accessToken})
}

// Logout handles POST /api/auth/logout. Deleting the stored token is
// best-effort; logout always succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshCookieName); err == nil {
		ac.authService.Logout(refreshToken)
	}

	ac.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(ac.refreshTTL.Seconds()), "/", "", ac.secureCookie, true)
}

func (ac *AuthController) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", ac.secureCookie, true)
}
