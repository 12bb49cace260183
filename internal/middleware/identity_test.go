package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runWith(t *testing.T, mw []echo.MiddlewareFunc, headers map[string]string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}

	assert.NoError(t, h(c))
	return rec, reached
}

func TestIdentity_SetsUserAndRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "user-1")
	req.Header.Set(HeaderUserRole, "ADMIN")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Identity()(func(c echo.Context) error {
		assert.Equal(t, "user-1", c.Get(CtxUserIDKey))
		assert.Equal(t, "ADMIN", c.Get(CtxUserRoleKey))
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentity_MissingUserID(t *testing.T) {
	rec, reached := runWith(t, []echo.MiddlewareFunc{Identity()}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestIdentity_BlankUserID(t *testing.T) {
	rec, reached := runWith(t, []echo.MiddlewareFunc{Identity()}, map[string]string{HeaderUserID: "   "})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAdminRoleGuard_AllowsAdmin(t *testing.T) {
	rec, reached := runWith(t,
		[]echo.MiddlewareFunc{Identity(), AdminRoleGuard()},
		map[string]string{HeaderUserID: "admin-1", HeaderUserRole: "ADMIN"},
	)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestAdminRoleGuard_RejectsUserRole(t *testing.T) {
	rec, reached := runWith(t,
		[]echo.MiddlewareFunc{Identity(), AdminRoleGuard()},
		map[string]string{HeaderUserID: "user-1", HeaderUserRole: "USER"},
	)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestAdminRoleGuard_RejectsMissingRole(t *testing.T) {
	rec, reached := runWith(t,
		[]echo.MiddlewareFunc{Identity(), AdminRoleGuard()},
		map[string]string{HeaderUserID: "user-1"},
	)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}
