// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios without inspecting driver
// errors. For example, ErrAlreadyRegistered surfaces a duplicate-key
// violation on the registrations table, while ErrForbidden indicates that
// the current user does not own the resource they are operating on.
package repository

import "errors"

// ErrEmailExists is returned when a signup collides with an existing
// email address. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrEventNotFound is returned when a lookup references an event id that
// does not exist. Handlers translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrAlreadyRegistered is returned when a registration insert hits the
// UNIQUE (user_id, event_id) constraint. This is the authoritative
// enforcement of the one-registration-per-user-per-event invariant; the
// handler-level pre-check only exists for precise error messages.
var ErrAlreadyRegistered = errors.New("already registered")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")
