package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linkin143/TaskBuddy/utils"
)

func newContext(t *testing.T, cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestCookieAuthValidToken(t *testing.T) {
	utils.InitJWT("test-secret")
	token, err := utils.GenerateJwt("abc123", "user")
	require.NoError(t, err)

	c, _ := newContext(t, &http.Cookie{Name: "access_token", Value: token})

	called := false
	next := func(c echo.Context) error {
		called = true
		return nil
	}

	err = CookieAuth(next)(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "abc123", UserID(c))
	assert.Equal(t, "user", Role(c))
}

func TestCookieAuthMissingCookie(t *testing.T) {
	utils.InitJWT("test-secret")

	c, _ := newContext(t, nil)

	err := CookieAuth(func(c echo.Context) error { return nil })(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestCookieAuthGarbageToken(t *testing.T) {
	utils.InitJWT("test-secret")

	c, _ := newContext(t, &http.Cookie{Name: "access_token", Value: "garbage"})

	err := CookieAuth(func(c echo.Context) error { return nil })(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
