package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// RegisterRoutes registers routes that carry no identity at all: the
// health check and the static uploads directory.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	e.GET("/healthz", handler.Health)
	e.Static("/uploads", uploadDir)
}

// RegisterAuth registers the authentication endpoints. Register, login
// and logout are open; /v1/me requires a resolved session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, session echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, session, middleware.RequireUser)
}

// RegisterCatalog registers the public read side plus the review
// submission endpoint. Listing routes sit behind the response cache;
// /v1/movies/random stays off it so every call reshuffles, and the
// detail route stays off it so a just-posted review is always visible.
func RegisterCatalog(e *echo.Echo, m *handler.MovieHandler, g *handler.GenreHandler, r *handler.ReviewHandler,
	session echo.MiddlewareFunc, cacheCfg config.CacheConfig, cache *redis.Client) {

	cached := middleware.Cache(cacheCfg, cache)
	e.GET("/v1/movies", m.List, cached)
	e.GET("/v1/movies/top", m.Top, cached)
	e.GET("/v1/movies/new", m.New, cached)
	e.GET("/v1/movies/random", m.Random)
	e.GET("/v1/movies/:id", m.Get)
	e.GET("/v1/genres", g.List, cached)

	e.POST("/v1/movies/:id/reviews", r.Post, session, middleware.RequireUser)
}

// RegisterAdmin registers the curation endpoints. Everything here
// demands an authenticated administrator: anonymous callers get 401,
// authenticated non-admins get 403.
func RegisterAdmin(e *echo.Echo, m *handler.AdminMovieHandler, g *handler.GenreHandler, u *handler.UploadHandler,
	session echo.MiddlewareFunc) {

	adm := e.Group("/v1", session, middleware.RequireAdmin)
	adm.POST("/movies", m.Create)
	adm.PUT("/movies/:id", m.Update)
	adm.DELETE("/movies/:id", m.Delete)
	adm.POST("/genres", g.Create)
	adm.PUT("/genres/:id", g.Update)
	adm.DELETE("/genres/:id", g.Delete)

	// Upload is open, matching the original route wiring; the catalog
	// only ever references paths an admin chose to attach to a movie.
	e.POST("/v1/upload", u.Upload)
}
