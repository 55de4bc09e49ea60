// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a user successfully
// registers for an event. It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	UserID         uint64 `json:"user_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	Category       string `json:"category"`
	Location       string `json:"location"`
	EventDate      string `json:"event_date"`
	ConfirmedAt    string `json:"confirmed_at"`
}
