package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// GenreHandler serves the public genre list and the admin CRUD
// endpoints. Deleting a genre that movies still reference is rejected
// with 409 rather than orphaning their genre_id.
type GenreHandler struct {
	Genres      *repository.GenreRepo
	Cache       *redis.Client
	CachePrefix string
}

func NewGenreHandler(g *repository.GenreRepo, cache *redis.Client, prefix string) *GenreHandler {
	return &GenreHandler{Genres: g, Cache: cache, CachePrefix: prefix}
}

type genreReq struct {
	Name string `json:"name"`
}

// List handles GET /v1/genres.
func (h *GenreHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	genres, err := h.Genres.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, genres)
}

// Create handles POST /v1/genres.
func (h *GenreHandler) Create(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	g := model.Genre{Name: name}
	if err := h.Genres.Create(ctx, &g); err != nil {
		if repository.IsDuplicateName(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)
	return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /v1/genres/:id.
func (h *GenreHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Genres.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case repository.IsDuplicateName(err):
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update genre failed"})
		}
	}
	updated, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/genres/:id.
func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Genres.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrGenreInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre is referenced by movies"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
		}
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)
	return c.NoContent(http.StatusNoContent)
}
