package repository

import (
	"context"
	"database/sql"
	"strings"
)

// RegistrationRepo provides persistence for the 'registrations' table.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

// Create inserts a registration row and returns its ID. A duplicate-key
// violation (MySQL error 1062) maps to ErrAlreadyRegistered: the UNIQUE
// (user_id, event_id) constraint is the authoritative enforcement of the
// at-most-one-registration invariant under concurrent requests.
func (r *RegistrationRepo) Create(ctx context.Context, userID, eventID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO registrations (user_id, event_id) VALUES (?,?)",
		userID, eventID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrAlreadyRegistered
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Exists reports whether a registration for the (user, event) pair is
// already present. This is an optimistic pre-check used to produce a
// precise error message; the insert-time constraint remains the source of
// truth.
func (r *RegistrationRepo) Exists(ctx context.Context, userID, eventID uint64) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM registrations WHERE user_id=? AND event_id=? LIMIT 1",
		userID, eventID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountForEvent returns the live registration count for an event.
func (r *RegistrationRepo) CountForEvent(ctx context.Context, eventID uint64) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registrations WHERE event_id=?", eventID).Scan(&n)
	return n, err
}

// CountForUser returns how many events the user is registered for.
func (r *RegistrationRepo) CountForUser(ctx context.Context, userID uint64) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registrations WHERE user_id=?", userID).Scan(&n)
	return n, err
}
