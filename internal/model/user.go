package model

import "time"

// Role values stored in users.role and carried in the JWT "role" claim.
const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// User represents an application user record as stored in the `users`
// table. Passwords are stored only as bcrypt hashes; handlers never see
// the plain secret after login verification.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name shown on dashboards.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hashed password.
//  Role         – "organizer" or "participant".
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
