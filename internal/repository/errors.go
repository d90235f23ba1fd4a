// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings: a missing movie maps to 404, a
// duplicate email to 409, a genre still referenced by movies to 409.
package repository

import "errors"

// ErrNotFound is returned when the requested record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by user creation when the email address
// is already registered. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrGenreInUse is returned when a genre delete is rejected because
// one or more movies still reference it. Handlers translate this
// into HTTP 409.
var ErrGenreInUse = errors.New("genre is referenced by movies")
