// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios and translate them
// into the right HTTP status.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no row. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint (email, room number, contract number, ...). Handlers should
// translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate entry")

// ErrConflict is returned when a mutation cannot proceed because of the
// row's current state, such as confirming a cancelled payment or signing a
// contract that is not a draft. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
