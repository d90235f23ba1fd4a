package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// SessionCookie is the name of the HTTP-only cookie carrying the
// session token.
const SessionCookie = "jwt"

// userContextKey is the echo context key under which the resolved
// identity is stored. Handlers read it through CurrentUser.
const userContextKey = "user"

// UserLoader resolves a token subject into a full user record. It is
// satisfied by *repository.UserRepo.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Session returns a middleware that resolves the request's identity
// from the session cookie. A request without the cookie proceeds as
// anonymous — that is not an error, public endpoints accept it. A
// request that does present a cookie expected to be recognized, so an
// invalid or expired token is rejected with 401 instead of being
// silently downgraded to anonymous.
func Session(secret string, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			uid, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// The account behind a valid token is gone.
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}
			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached to the request,
// or false when the request is anonymous.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userContextKey).(model.User)
	return u, ok
}
