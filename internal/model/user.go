package model

import "time"

// User represents an application user record as stored in the
// `users` table. The password hash never leaves the server; the json
// tag on PasswordHash makes sure it is stripped from every response.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – display name shown next to reviews.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – whether the user may curate the catalog.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
