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

	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	queue_publisher "github.com/iliyamo/movie-catalog/internal/service"
)

// ReviewHandler accepts review submissions. The ledger write, the
// aggregate recompute and the derived-column update happen in one
// transaction inside the repository; this handler only validates
// input, maps errors and fans out the side effects (event publish,
// cache purge).
type ReviewHandler struct {
	Reviews     *repository.ReviewRepo
	Cache       *redis.Client
	CachePrefix string
}

func NewReviewHandler(r *repository.ReviewRepo, cache *redis.Client, prefix string) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Cache: cache, CachePrefix: prefix}
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Post handles POST /v1/movies/:id/reviews. A second submission by the
// same user replaces their earlier review. Returns the updated movie
// so the client can re-render without another round trip.
func (h *ReviewHandler) Post(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Reviews.AddOrReplace(ctx, movieID, u.ID, u.Username, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save review failed"})
	}

	purgeCatalogCache(c, h.Cache, h.CachePrefix)

	pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pubCancel()
	if err := queue_publisher.PublishReviewPosted(pubCtx, queue.ReviewPostedEvent{
		MovieID:    m.ID,
		MovieName:  m.Name,
		UserID:     u.ID,
		Username:   u.Username,
		Rating:     req.Rating,
		AvgRating:  m.Rating,
		NumReviews: m.NumReviews,
		PostedAt:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		c.Logger().Warnf("review event publish failed: %v", err)
	}

	return c.JSON(http.StatusOK, m)
}
