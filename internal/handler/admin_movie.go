package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	queue_publisher "github.com/iliyamo/movie-catalog/internal/service"
)

// AdminMovieHandler implements the curation side of the catalog. All
// routes behind it are wrapped in RequireAdmin by the router.
type AdminMovieHandler struct {
	Movies      *repository.MovieRepo
	Genres      *repository.GenreRepo
	Cache       *redis.Client
	CachePrefix string
}

func NewAdminMovieHandler(m *repository.MovieRepo, g *repository.GenreRepo, cache *redis.Client, prefix string) *AdminMovieHandler {
	return &AdminMovieHandler{Movies: m, Genres: g, Cache: cache, CachePrefix: prefix}
}

type movieReq struct {
	Name    string   `json:"name"`
	Year    int      `json:"year"`
	Detail  string   `json:"detail"`
	Cast    []string `json:"cast"`
	GenreID uint64   `json:"genre_id"`
	Image   *string  `json:"image"`
}

// validate trims the request in place and reports the first problem,
// checking the referenced genre exists. The genre check is payload
// validation, so a bad reference is a 400, not a 404.
func (h *AdminMovieHandler) validate(c echo.Context, req *movieReq) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Detail = strings.TrimSpace(req.Detail)
	switch {
	case req.Name == "":
		return "name is required", nil
	case req.Year == 0:
		return "year is required", nil
	case req.Detail == "":
		return "detail is required", nil
	case len(req.Cast) == 0:
		return "cast is required", nil
	case req.GenreID == 0:
		return "genre_id is required", nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Genres.GetByID(ctx, req.GenreID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "unknown genre", nil
		}
		return "", err
	}
	return "", nil
}

// Create handles POST /v1/movies.
func (h *AdminMovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, err := h.validate(c, &req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	m := model.Movie{
		Name:    req.Name,
		Year:    req.Year,
		Detail:  req.Detail,
		Cast:    req.Cast,
		GenreID: req.GenreID,
		Image:   req.Image,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)

	pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pubCancel()
	if err := queue_publisher.PublishMovieCreated(pubCtx, queue.MovieCreatedEvent{
		MovieID:   m.ID,
		Name:      m.Name,
		Year:      m.Year,
		GenreID:   m.GenreID,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		c.Logger().Warnf("movie event publish failed: %v", err)
	}

	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /v1/movies/:id. Derived fields and the review
// ledger are untouched by curation updates.
func (h *AdminMovieHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg, err := h.validate(c, &req); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	m := model.Movie{
		ID:      id,
		Name:    req.Name,
		Year:    req.Year,
		Detail:  req.Detail,
		Cast:    req.Cast,
		GenreID: req.GenreID,
		Image:   req.Image,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Movies.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /v1/movies/:id. The movie's reviews go with it.
func (h *AdminMovieHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)
	return c.NoContent(http.StatusNoContent)
}
