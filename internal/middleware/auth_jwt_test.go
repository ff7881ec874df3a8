package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testAccessSecret = "test-access-secret"

func signTestToken(t *testing.T, sub string, isAdmin bool, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      sub,
		"is_admin": isAdmin,
		"iat":      time.Now().Add(-time.Minute).Unix(),
		"exp":      expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(testAccessSecret))
	assert.NoError(t, err)
	return signed
}

func runAuthJWT(t *testing.T, authz string) (*httptest.ResponseRecorder, bool, int64, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var gotUserID int64
	var gotIsAdmin bool
	next := func(c echo.Context) error {
		called = true
		gotUserID, _ = c.Get(middleware.CtxUserIDKey).(int64)
		gotIsAdmin, _ = c.Get(middleware.CtxIsAdminKey).(bool)
		return c.NoContent(http.StatusOK)
	}

	cfg := config.Config{JWTAccessSecret: testAccessSecret}
	err := middleware.AuthJWT(cfg)(next)(c)
	assert.NoError(t, err)

	return rec, called, gotUserID, gotIsAdmin
}

func TestAuthJWT_ValidTokenSetsContext(t *testing.T) {
	token := signTestToken(t, "42", true, time.Now().Add(time.Hour))

	rec, called, userID, isAdmin := runAuthJWT(t, "Bearer "+token)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)
	assert.True(t, isAdmin)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signTestToken(t, "42", false, time.Now().Add(-time.Hour))

	rec, called, _, _ := runAuthJWT(t, "Bearer "+token)

	// 期限切れはhandlerに到達しない
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, called, _, _ := runAuthJWT(t, "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAuthJWT_WrongScheme(t *testing.T) {
	rec, called, _, _ := runAuthJWT(t, "Basic dXNlcjpwYXNz")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	rec, called, _, _ := runAuthJWT(t, "Bearer "+signed)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}
