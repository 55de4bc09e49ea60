package model

import "time"

// Registration links one user to one event. The `registrations` table
// carries a UNIQUE (user_id, event_id) constraint; that constraint, not
// the application-level pre-check, is the authoritative enforcement of
// the at-most-one-registration invariant.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – registered user.
//  EventID   – event registered for.
//  CreatedAt – creation timestamp.
type Registration struct {
	ID        uint64    // registrations.id
	UserID    uint64    // registrations.user_id
	EventID   uint64    // registrations.event_id
	CreatedAt time.Time // registrations.created_at
}
