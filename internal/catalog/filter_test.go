package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/model"
)

func sampleMovies() []model.Movie {
	return []model.Movie{
		{ID: 1, Name: "The Dark Knight", Year: 2008, GenreID: 1, Rating: 4.5, NumReviews: 12},
		{ID: 2, Name: "Darkest Hour", Year: 2017, GenreID: 2, Rating: 4.5, NumReviews: 3},
		{ID: 3, Name: "Up", Year: 2009, GenreID: 3, Rating: 4.5, NumReviews: 12},
		{ID: 4, Name: "Alien", Year: 1979, GenreID: 2, Rating: 4.0, NumReviews: 30},
		{ID: 5, Name: "After Dark", Year: 2008, GenreID: 2, Rating: 0, NumReviews: 0},
	}
}

func TestApplySearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(sampleMovies(), Filter{Search: "dark"})
	require.Len(t, got, 3)
	for _, m := range got {
		assert.Contains(t, []uint64{1, 2, 5}, m.ID)
	}
}

func TestApplyGenreAndYearAreExactMatches(t *testing.T) {
	byGenre := Apply(sampleMovies(), Filter{GenreID: 2})
	require.Len(t, byGenre, 3)

	byYear := Apply(sampleMovies(), Filter{Year: 2008})
	require.Len(t, byYear, 2)

	both := Apply(sampleMovies(), Filter{GenreID: 2, Year: 2008})
	require.Len(t, both, 1)
	assert.Equal(t, uint64(5), both[0].ID)
}

func TestApplyZeroFilterReturnsEverything(t *testing.T) {
	got := Apply(sampleMovies(), Filter{})
	assert.Len(t, got, len(sampleMovies()))
}

func TestApplyTopOrderingIsDeterministic(t *testing.T) {
	// rating desc, ties by review count desc, then id asc
	want := []uint64{1, 3, 2, 4, 5}
	for i := 0; i < 10; i++ {
		got := Apply(sampleMovies(), Filter{Mode: ModeTop})
		ids := make([]uint64, len(got))
		for i, m := range got {
			ids[i] = m.ID
		}
		assert.Equal(t, want, ids)
	}
}

func TestApplyNewOrdersByIDDescending(t *testing.T) {
	got := Apply(sampleMovies(), Filter{Mode: ModeNew})
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i-1].ID, got[i].ID)
	}
}

func TestApplyRandomIsAPermutationOfTheFilteredSubset(t *testing.T) {
	got := Apply(sampleMovies(), Filter{GenreID: 2, Mode: ModeRandom})
	require.Len(t, got, 3)
	seen := map[uint64]bool{}
	for _, m := range got {
		seen[m.ID] = true
	}
	assert.Equal(t, map[uint64]bool{2: true, 4: true, 5: true}, seen)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sampleMovies()
	_ = Apply(in, Filter{Mode: ModeTop})
	_ = Apply(in, Filter{Mode: ModeRandom})
	for i, m := range sampleMovies() {
		assert.Equal(t, m.ID, in[i].ID)
	}
}

func TestApplyFiltersBeforeOrdering(t *testing.T) {
	got := Apply(sampleMovies(), Filter{Search: "dark", Mode: ModeTop})
	require.Len(t, got, 3)
	ids := []uint64{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []uint64{1, 2, 5}, ids)
}
