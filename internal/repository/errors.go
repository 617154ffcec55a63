// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values allow higher layers
// such as handlers to distinguish between failure scenarios: a lookup
// miss becomes a 404, a lock violation a 409, and so on.
package repository

import "errors"

// ErrNotFound is returned when a zone, table, booking or settings row
// does not exist.  Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ErrLocked is returned when a write would modify a booking whose
// final assignment is locked.  Handlers should translate this into an
// HTTP 409 response; the caller must unlock first.
var ErrLocked = errors.New("assignment locked")
