package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runAdminGuard(t *testing.T, setup func(c echo.Context)) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	err := middleware.AdminGuard()(next)(c)
	assert.NoError(t, err)
	return rec, called
}

func TestAdminGuard_AdminPasses(t *testing.T) {
	rec, called := runAdminGuard(t, func(c echo.Context) {
		c.Set(middleware.CtxIsAdminKey, true)
	})

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGuard_NonAdminForbidden(t *testing.T) {
	rec, called := runAdminGuard(t, func(c echo.Context) {
		c.Set(middleware.CtxIsAdminKey, false)
	})

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin only")
}

func TestAdminGuard_MissingClaim(t *testing.T) {
	rec, called := runAdminGuard(t, nil)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
