package model

import "time"

// Movie represents a catalog entry as stored in the `movies` table.
// Rating and NumReviews are derived from the movie's reviews and are
// rewritten inside the same transaction as every review mutation, so
// readers never observe them out of sync with the ledger.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – movie title.
//  Year       – release year.
//  Detail     – synopsis / description text.
//  Cast       – ordered list of actor names (JSON column).
//  GenreID    – reference into the genres table.
//  Image      – public path of the poster image, nil when none was uploaded.
//  Rating     – mean of all review ratings, rounded to one decimal.
//  NumReviews – number of reviews currently on the ledger.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Movie struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Year       int       `json:"year"`
	Detail     string    `json:"detail"`
	Cast       []string  `json:"cast"`
	GenreID    uint64    `json:"genre_id"`
	Image      *string   `json:"image"`
	Rating     float64   `json:"rating"`
	NumReviews int       `json:"num_reviews"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Reviews is populated only on the detail read path; list endpoints
	// leave it nil to keep payloads small.
	Reviews []Review `json:"reviews,omitempty"`
}
