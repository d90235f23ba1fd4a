package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUser aborts anonymous requests with 401. It assumes Session
// ran earlier in the chain and stored the identity in the context.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUser(c); !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		return next(c)
	}
}

// RequireAdmin enforces that the request comes from an authenticated
// administrator. An anonymous request gets 401; an authenticated
// non-admin gets 403. The two outcomes are distinct and must never be
// conflated: 401 asks the client to log in, 403 tells a logged-in
// client it will not be allowed regardless.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		if !u.IsAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access only"})
		}
		return next(c)
	}
}
