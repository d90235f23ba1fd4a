package model

import "time"

// Genre represents a row in the `genres` table. Movies reference a
// genre by id; a genre that is still referenced cannot be deleted.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique genre name.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Genre struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
