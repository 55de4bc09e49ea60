package model

import "time"

// EventStatusApproved is the status assigned to every organizer-created
// event. The column exists so that a future moderation flow can park
// events in other states without a schema change.
const EventStatusApproved = "approved"

// Event represents an organizer-owned event as stored in the `events`
// table. Capacity is optional: a NULL capacity means the event accepts an
// unlimited number of registrations. RegistrationCount is a denormalized
// cache of the registration total; the authoritative count is always the
// aggregate over the registrations table.
//
// Fields:
//  ID                – primary key identifier.
//  OrganizerID       – user who owns the event.
//  Title             – event name.
//  Category          – sport category id (closed enumeration).
//  Date              – when the event takes place.
//  Location          – venue description.
//  Description       – optional free text.
//  Capacity          – optional upper bound on registrations (nil = unlimited).
//  ImageURL          – optional image reference.
//  Status            – event state ("approved").
//  RegistrationCount – cached registration total (not authoritative).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Event struct {
	ID                uint64    // events.id
	OrganizerID       uint64    // events.organizer_id
	Title             string    // events.title
	Category          Category  // events.sport_category_id
	Date              time.Time // events.date
	Location          string    // events.location
	Description       *string   // events.description (nullable)
	Capacity          *uint32   // events.capacity (nullable)
	ImageURL          *string   // events.image_url (nullable)
	Status            string    // events.status
	RegistrationCount uint32    // events.registration_count (cache)
	CreatedAt         time.Time // events.created_at
	UpdatedAt         time.Time // events.updated_at
}
