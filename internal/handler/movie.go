package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/catalog"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// MovieHandler serves the public read side of the catalog. Listings
// load the full movie set and run it through the catalog filter/sort
// engine; the detail endpoint additionally attaches the review list.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Reviews *repository.ReviewRepo
}

func NewMovieHandler(m *repository.MovieRepo, r *repository.ReviewRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Reviews: r}
}

// filterFromQuery reads ?search=&genre=&year=&sort= into a catalog
// filter. Unparsable genre/year values are treated as absent, matching
// how the UI builds these links.
func filterFromQuery(c echo.Context) catalog.Filter {
	f := catalog.Filter{
		Search: c.QueryParam("search"),
		Mode:   strings.ToLower(c.QueryParam("sort")),
	}
	if v, err := strconv.ParseUint(c.QueryParam("genre"), 10, 64); err == nil {
		f.GenreID = v
	}
	if v, err := strconv.Atoi(c.QueryParam("year")); err == nil {
		f.Year = v
	}
	return f
}

func (h *MovieHandler) list(c echo.Context, f catalog.Filter) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, catalog.Apply(movies, f))
}

// List handles GET /v1/movies with optional search/genre/year/sort
// query parameters.
func (h *MovieHandler) List(c echo.Context) error {
	return h.list(c, filterFromQuery(c))
}

// Top handles GET /v1/movies/top.
func (h *MovieHandler) Top(c echo.Context) error {
	return h.list(c, catalog.Filter{Mode: catalog.ModeTop})
}

// New handles GET /v1/movies/new.
func (h *MovieHandler) New(c echo.Context) error {
	return h.list(c, catalog.Filter{Mode: catalog.ModeNew})
}

// Random handles GET /v1/movies/random. Every call reshuffles; this
// route is deliberately kept off the response cache.
func (h *MovieHandler) Random(c echo.Context) error {
	return h.list(c, catalog.Filter{Mode: catalog.ModeRandom})
}

// Get handles GET /v1/movies/:id and returns the movie together with
// its reviews.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	m.Reviews, err = h.Reviews.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, m)
}
