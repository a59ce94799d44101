package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsBurstThenThrottles(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d should pass", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// A different client has its own bucket.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterMiddlewareRejectsWith429(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	handler := rl.Middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e := echo.New()

	newCtx := func() echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		return e.NewContext(req, httptest.NewRecorder())
	}

	require.NoError(t, handler(newCtx()))

	err := handler(newCtx())
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
}
