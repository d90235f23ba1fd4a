package catalog

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// Sort modes accepted by Filter.Mode. Anything else is treated as
// ModeNone and preserves the input order of the filtered subset.
const (
	ModeNone   = ""
	ModeTop    = "top"
	ModeNew    = "new"
	ModeRandom = "random"
)

// Filter describes what a client asked the catalog for. Zero values
// mean "no filtering" for the respective field.
type Filter struct {
	Search  string // case-insensitive substring match on the name
	GenreID uint64 // exact genre match
	Year    int    // exact release-year match
	Mode    string // ordering applied to the filtered subset
}

// Apply filters the movie set and orders the result according to the
// filter's mode. Filtering always happens first, so the mode orders
// only the subset a client will actually see. The input slice is never
// modified; the result is a fresh slice.
//
// Mode semantics:
//   top    – rating descending, ties by review count descending, then
//            id ascending; deterministic across calls.
//   new    – newest first (id descending).
//   random – a fresh shuffle on every call, never cached.
func Apply(movies []model.Movie, f Filter) []model.Movie {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		if f.GenreID != 0 && m.GenreID != f.GenreID {
			continue
		}
		if f.Year != 0 && m.Year != f.Year {
			continue
		}
		out = append(out, m)
	}

	switch f.Mode {
	case ModeTop:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating > out[j].Rating
			}
			if out[i].NumReviews != out[j].NumReviews {
				return out[i].NumReviews > out[j].NumReviews
			}
			return out[i].ID < out[j].ID
		})
	case ModeNew:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ID > out[j].ID
		})
	case ModeRandom:
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}
