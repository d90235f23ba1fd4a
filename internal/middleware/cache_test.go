package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/config"
)

func ctxForQuery(rawQuery string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCacheBypassForRandomSort(t *testing.T) {
	cases := []struct {
		query  string
		bypass bool
	}{
		{"sort=random", true},
		{"sort=RANDOM", true},
		{"search=dark&sort=random", true},
		{"sort=top", false},
		{"sort=new", false},
		{"search=dark", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run("?"+tc.query, func(t *testing.T) {
			assert.Equal(t, tc.bypass, cacheBypass(ctxForQuery(tc.query)))
		})
	}
}

// A shuffled listing must reach the handler on every call even when a
// cache client is configured; nothing from such a request may be
// stored or replayed.
func TestCacheMiddlewareNeverInterceptsRandomSort(t *testing.T) {
	cfg := config.LoadCacheConfig()
	calls := 0
	h := Cache(cfg, nil)(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"call": calls})
	})

	for i := 1; i <= 3; i++ {
		c := ctxForQuery("sort=random")
		require.NoError(t, h(c))
	}
	assert.Equal(t, 3, calls)
}

func TestCacheKeySeparatesQueries(t *testing.T) {
	prefix := "catalog"
	a := cacheKey(prefix, ctxForQuery("sort=top"))
	b := cacheKey(prefix, ctxForQuery("sort=new"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cacheKey(prefix, ctxForQuery("sort=top")))
}
