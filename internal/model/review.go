package model

import "time"

// Review represents a single user's rating and comment for a movie,
// stored in the `reviews` table. The unique key (movie_id, user_id)
// guarantees at most one review per user per movie; a resubmission
// replaces the existing row. Username is a snapshot taken at write
// time: deleting the user later does not blank out their reviews.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie the review belongs to.
//  UserID    – author of the review (reference, not ownership).
//  Username  – author display name captured when the review was written.
//  Rating    – integer star rating in [1,5].
//  Comment   – free-form review text, never empty.
//  CreatedAt – when the review was first written.
//  UpdatedAt – bumped when the author replaces their review.
type Review struct {
	ID        uint64    `json:"id"`
	MovieID   uint64    `json:"movie_id"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
