package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Linkin143/TaskBuddy/utils"
)

// CookieAuth rejects requests without a valid access_token cookie and puts
// the decoded identity on the request context for the handlers.
func CookieAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie("access_token")
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		userID, role, err := utils.ValidateJwt(cookie.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		return next(c)
	}
}

// UserID returns the authenticated user id set by CookieAuth.
func UserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

// Role returns the authenticated role set by CookieAuth.
func Role(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
