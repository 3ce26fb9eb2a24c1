package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-be/internal/models"
	"catalog-be/internal/repository"
	"catalog-be/internal/service"
)

// fakeAuthService scripts the AuthService responses for handler tests
type fakeAuthService struct {
	registerResp *models.AuthResponse
	registerErr  error
	loginResp    *models.AuthResponse
	loginErr     error
	refreshErr   error
	loggedOut    []string
}

var _ service.AuthService = (*fakeAuthService)(nil)

func (f *fakeAuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return f.registerResp, "refresh-token-1", nil
}

func (f *fakeAuthService) Login(req *models.LoginRequest) (*models.AuthResponse, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginResp, "refresh-token-1", nil
}

func (f *fakeAuthService) Refresh(refreshToken string) (string, string, error) {
	if f.refreshErr != nil {
		return "", "", f.refreshErr
	}
	return "new-access-token", "new-refresh-token", nil
}

func (f *fakeAuthService) Logout(refreshToken string) {
	f.loggedOut = append(f.loggedOut, refreshToken)
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ac := NewAuthController(svc, 7*24*time.Hour, false)
	router := gin.New()
	auth := router.Group("/api/auth")
	auth.POST("/register", ac.Register)
	auth.POST("/login", ac.Login)
	auth.POST("/refresh", ac.Refresh)
	auth.POST("/logout", ac.Logout)
	return router
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "refreshToken" {
			return cookie
		}
	}
	t.Fatal("refreshToken cookie not set")
	return nil
}

func TestRegisterSetsRefreshCookie(t *testing.T) {
	name := "Jane"
	router := newAuthRouter(&fakeAuthService{
		registerResp: &models.AuthResponse{
			User:        models.UserInfo{ID: "user-1", Email: "a@b.com", Name: &name},
			AccessToken: "access-token-1",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"a@b.com","password":"secret1","name":"Jane"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"user":{"id":"user-1","email":"a@b.com","name":"Jane"},"accessToken":"access-token-1"}`, w.Body.String())

	cookie := refreshCookie(t, w)
	assert.Equal(t, "refresh-token-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	// Refresh token never appears in the body
	assert.NotContains(t, w.Body.String(), "refresh-token-1")
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	cases := []string{
		`{"email":"not-an-email","password":"secret1"}`,
		`{"email":"a@b.com","password":"short"}`,
		`{"password":"secret1"}`,
		`not json`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestRegisterConflict(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{registerErr: service.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"a@b.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, w.Body.String())
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
}

func TestRefreshWithoutCookie(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No refresh token provided"}`, w.Body.String())
}

func TestRefreshRotatesCookie(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old-refresh-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accessToken":"new-access-token"}`, w.Body.String())

	cookie := refreshCookie(t, w)
	assert.Equal(t, "new-refresh-token", cookie.Value)
}

func TestRefreshInvalidStoredToken(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{refreshErr: repository.ErrTokenNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "consumed-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid refresh token"}`, w.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "some-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
	assert.Equal(t, []string{"some-token"}, svc.loggedOut)

	cookie := refreshCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestLogoutWithoutCookieStillSucceeds(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.loggedOut)
}
