package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/movie-catalog/internal/catalog"
)

func filterFor(rawQuery string) catalog.Filter {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	return filterFromQuery(e.NewContext(req, rec))
}

func TestFilterFromQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  catalog.Filter
	}{
		{"empty", "", catalog.Filter{}},
		{"search only", "search=dark", catalog.Filter{Search: "dark"}},
		{"all fields", "search=dark&genre=3&year=2008&sort=top",
			catalog.Filter{Search: "dark", GenreID: 3, Year: 2008, Mode: catalog.ModeTop}},
		{"sort is lower-cased", "sort=TOP", catalog.Filter{Mode: catalog.ModeTop}},
		{"bad genre ignored", "genre=action", catalog.Filter{}},
		{"bad year ignored", "year=nineteen", catalog.Filter{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, filterFor(tc.query))
		})
	}
}
