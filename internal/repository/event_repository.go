package repository

import (
	"context"
	"database/sql"
	"log"

	"github.com/sportspark/sportspark-api/internal/model"
)

// EventRepo provides persistence for the 'events' table. Listing queries
// annotate every event with a live registration count computed by a
// LEFT JOIN over the registrations table; the cached registration_count
// column is never read back for business decisions, only maintained
// opportunistically after successful inserts.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// EventWithCount pairs an event row with its live registration count.
type EventWithCount struct {
	Event             model.Event
	RegistrationCount uint64
}

const eventSelectWithCount = `SELECT e.id, e.organizer_id, e.title, e.sport_category_id,
       e.date, e.location, e.description, e.capacity, e.image_url, e.status,
       e.registration_count, e.created_at, e.updated_at,
       COUNT(r.id) AS registration_count_live
FROM events e
LEFT JOIN registrations r ON r.event_id = e.id`

// Create inserts a new event owned by the organizer and returns its ID.
// Status is always "approved" on creation.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO events
		 (organizer_id, title, sport_category_id, date, location, description, capacity, image_url, status)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		e.OrganizerID, e.Title, e.Category, e.Date, e.Location,
		e.Description, e.Capacity, e.ImageURL, model.EventStatusApproved)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single event. Missing rows map to ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	var e model.Event
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, organizer_id, title, sport_category_id, date, location,
		        description, capacity, image_url, status, registration_count,
		        created_at, updated_at
		 FROM events WHERE id=? LIMIT 1`, id).
		Scan(&e.ID, &e.OrganizerID, &e.Title, &e.Category, &e.Date, &e.Location,
			&e.Description, &e.Capacity, &e.ImageURL, &e.Status,
			&e.RegistrationCount, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return e, ErrEventNotFound
	}
	return e, err
}

// ListAll returns every event with its live registration count, newest
// first. It backs both the participant dashboard and the public listing.
func (r *EventRepo) ListAll(ctx context.Context) ([]EventWithCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		eventSelectWithCount+` GROUP BY e.id ORDER BY e.updated_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanEventsWithCount(rows)
}

// ListByOrganizer returns the events owned by the given organizer with
// live registration counts, newest first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]EventWithCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		eventSelectWithCount+` WHERE e.organizer_id=? GROUP BY e.id ORDER BY e.updated_at DESC`,
		organizerID)
	if err != nil {
		return nil, err
	}
	return scanEventsWithCount(rows)
}

func scanEventsWithCount(rows *sql.Rows) ([]EventWithCount, error) {
	defer rows.Close()
	out := []EventWithCount{}
	for rows.Next() {
		var ec EventWithCount
		e := &ec.Event
		if err := rows.Scan(&e.ID, &e.OrganizerID, &e.Title, &e.Category, &e.Date,
			&e.Location, &e.Description, &e.Capacity, &e.ImageURL, &e.Status,
			&e.RegistrationCount, &e.CreatedAt, &e.UpdatedAt,
			&ec.RegistrationCount); err != nil {
			return nil, err
		}
		out = append(out, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOwned removes an event and all of its registrations on behalf of
// its owner. The ownership check folds "missing" and "not owned" into
// ErrForbidden so that the response does not reveal whether the event
// exists. Registrations are deleted before the event to satisfy the
// parent-child dependency; no transaction spans the two deletes, so a
// crash between them can only lose registrations, never orphan them.
func (r *EventRepo) DeleteOwned(ctx context.Context, id, ownerID uint64) error {
	var got uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM events WHERE id=? AND organizer_id=? LIMIT 1",
		id, ownerID).Scan(&got)
	if err == sql.ErrNoRows {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM registrations WHERE event_id=?", id); err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	return err
}

// BumpRegistrationCount increments the cached registration counter. The
// cache is best-effort: callers log failures and carry on, because the
// authoritative count is always the aggregate over registrations.
func (r *EventRepo) BumpRegistrationCount(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE events SET registration_count = COALESCE(registration_count,0) + 1 WHERE id=?",
		id)
	if err != nil {
		log.Printf("events: bump registration_count for id=%d failed: %v", id, err)
	}
	return err
}
