package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// purgeCatalogCache drops the cached catalog listings after a write.
// Failures only delay freshness until the TTL, so they are logged and
// swallowed.
func purgeCatalogCache(c echo.Context, client *redis.Client, prefix string) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := middleware.Purge(ctx, client, prefix); err != nil {
		c.Logger().Warnf("cache purge failed: %v", err)
	}
}
