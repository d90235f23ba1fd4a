package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

const testSecret = "middleware-test-secret"

// fakeUsers satisfies UserLoader with an in-memory map.
type fakeUsers map[uint64]model.User

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func run(t *testing.T, mw []echo.MiddlewareFunc, cookie string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := echo.HandlerFunc(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	require.NoError(t, h(c))
	return rec, reached
}

func TestSessionMissingCookieIsAnonymous(t *testing.T) {
	mw := []echo.MiddlewareFunc{Session(testSecret, fakeUsers{})}
	rec, reached := run(t, mw, "")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionInvalidTokenIsRejected(t *testing.T) {
	mw := []echo.MiddlewareFunc{Session(testSecret, fakeUsers{})}
	rec, reached := run(t, mw, "garbage")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestSessionExpiredTokenIsRejected(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{Session(testSecret, fakeUsers{})}
	rec, reached := run(t, mw, expired)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestSessionDeletedUserIsRejected(t *testing.T) {
	st, err := utils.NewSessionToken(testSecret, 99, 1)
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{Session(testSecret, fakeUsers{})}
	rec, reached := run(t, mw, st.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionValidTokenResolvesUser(t *testing.T) {
	users := fakeUsers{7: {ID: 7, Username: "alice", Email: "alice@example.com"}}
	st, err := utils.NewSessionToken(testSecret, 7, 1)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: st.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got model.User
	h := Session(testSecret, users)(func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		got = u
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, uint64(7), got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	mw := []echo.MiddlewareFunc{Session(testSecret, fakeUsers{}), RequireUser}
	rec, reached := run(t, mw, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminAnonymousIsUnauthorizedNotForbidden(t *testing.T) {
	mw := []echo.MiddlewareFunc{Session(testSecret, fakeUsers{}), RequireAdmin}
	rec, reached := run(t, mw, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminNonAdminIsForbiddenNotUnauthorized(t *testing.T) {
	users := fakeUsers{3: {ID: 3, Username: "bob", IsAdmin: false}}
	st, err := utils.NewSessionToken(testSecret, 3, 1)
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{Session(testSecret, users), RequireAdmin}
	rec, reached := run(t, mw, st.Token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	users := fakeUsers{4: {ID: 4, Username: "root", IsAdmin: true}}
	st, err := utils.NewSessionToken(testSecret, 4, 1)
	require.NoError(t, err)

	mw := []echo.MiddlewareFunc{Session(testSecret, users), RequireAdmin}
	rec, reached := run(t, mw, st.Token)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}
