// Package catalog holds the pure computations over the movie set: the
// rating aggregation that feeds a movie's derived fields and the
// filter/sort engine behind the public listing endpoints. Nothing in
// this package touches the database or the request context.
package catalog

import "math"

// Aggregate derives a movie's displayed rating and review count from
// the ratings currently on its ledger. The rating is the mean rounded
// to one decimal; an empty ledger yields 0.
func Aggregate(ratings []int) (rating float64, count int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, v := range ratings {
		sum += v
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10, len(ratings)
}
