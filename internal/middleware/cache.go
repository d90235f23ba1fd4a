package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/catalog"
	"github.com/iliyamo/movie-catalog/internal/config"
)

// cacheWriter captures the response body while forwarding it to the
// client, so a successful render can be stored after the handler ran.
type cacheWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *cacheWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// cacheBypass reports whether a request must never be served from or
// stored in the cache. A shuffled listing (?sort=random) has to produce
// a fresh permutation on every call; replaying a stored body would
// silently reuse one permutation for the whole TTL. The sort parameter
// is matched case-insensitively because the handler lower-cases it too.
func cacheBypass(c echo.Context) bool {
	return strings.EqualFold(c.QueryParam("sort"), catalog.ModeRandom)
}

// cacheKey derives a stable key from the route and raw query under the
// configured prefix. Hashing keeps arbitrary query strings out of the
// key space.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

// Cache returns a middleware that serves successful GET responses of
// the wrapped routes from Redis. Only status 200 JSON bodies are
// stored. With a nil client or caching disabled the middleware is a
// pass-through, so the service runs fine without Redis. Entries live
// until the TTL elapses or a catalog write calls Purge.
func Cache(cfg config.CacheConfig, client *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil || !cfg.Enabled || c.Request().Method != http.MethodGet || cacheBypass(c) {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 300*time.Millisecond)
			cached, err := client.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				return c.JSONBlob(http.StatusOK, cached)
			}

			w := &cacheWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				return err
			}
			if w.status == http.StatusOK && w.buf.Len() > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
				// Best effort: a failed store only costs the next reader a DB hit.
				_ = client.Set(ctx, key, w.buf.Bytes(), cfg.TTL).Err()
				cancel()
			}
			return nil
		}
	}
}

// Purge drops every cached response under the prefix. Mutation paths
// call this after commit so no reader observes derived fields older
// than the write.
func Purge(ctx context.Context, client *redis.Client, prefix string) error {
	if client == nil {
		return nil
	}
	iter := client.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
