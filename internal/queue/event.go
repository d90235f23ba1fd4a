// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewPostedEvent is published when a review is added or replaced.
// It carries the refreshed aggregate so downstream consumers can log,
// notify or feed analytics without querying the primary database.
type ReviewPostedEvent struct {
	MovieID    uint64  `json:"movie_id"`
	MovieName  string  `json:"movie_name"`
	UserID     uint64  `json:"user_id"`
	Username   string  `json:"username"`
	Rating     int     `json:"rating"`
	AvgRating  float64 `json:"avg_rating"`
	NumReviews int     `json:"num_reviews"`
	PostedAt   string  `json:"posted_at"`
}

// MovieCreatedEvent is published when an administrator adds a movie to
// the catalog.
type MovieCreatedEvent struct {
	MovieID   uint64 `json:"movie_id"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	GenreID   uint64 `json:"genre_id"`
	CreatedAt string `json:"created_at"`
}
