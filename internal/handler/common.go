package handler // handler defines http handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportspark/sportspark-api/internal/model"
	"github.com/sportspark/sportspark-api/internal/queue"
	"github.com/sportspark/sportspark-api/internal/repository"
)

// The handler layer depends on small consumer-side interfaces rather than
// the concrete repositories so the store client stays an injected
// capability and tests can substitute in-memory fakes. The repository
// types satisfy these interfaces.

// UserStore persists and looks up user identity records.
type UserStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// EventStore persists organizer-owned events and derives live
// registration counts.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	ListAll(ctx context.Context) ([]repository.EventWithCount, error)
	ListByOrganizer(ctx context.Context, organizerID uint64) ([]repository.EventWithCount, error)
	DeleteOwned(ctx context.Context, id, ownerID uint64) error
	BumpRegistrationCount(ctx context.Context, id uint64) error
}

// RegistrationStore persists user-event registrations.
type RegistrationStore interface {
	Create(ctx context.Context, userID, eventID uint64) (uint64, error)
	Exists(ctx context.Context, userID, eventID uint64) (bool, error)
	CountForEvent(ctx context.Context, eventID uint64) (uint64, error)
	CountForUser(ctx context.Context, userID uint64) (uint64, error)
}

// RegistrationPublisher emits a confirmation event after a successful
// registration. Implementations are best-effort; a nil publisher disables
// publishing.
type RegistrationPublisher interface {
	PublishRegistrationConfirmed(ctx context.Context, ev queue.RegistrationConfirmedEvent) error
}

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the user_id claim from echo.Context and converts it
// to uint64. JWT numeric claims decode as float64, so several source
// types are tolerated.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getName extracts the display-name claim, falling back to a neutral
// label when the token predates the name claim.
func getName(c echo.Context) string {
	if s, ok := c.Get("name").(string); ok && s != "" {
		return s
	}
	return "User"
}

// eventResponse is the JSON shape shared by the dashboards and the public
// listing. RegistrationCount is the live aggregate, never the cached
// column.
type eventResponse struct {
	ID                uint64  `json:"id"`
	EventName         string  `json:"event_name"`
	Category          string  `json:"category"`
	EventDate         string  `json:"event_date"`
	Location          string  `json:"location"`
	Description       *string `json:"description,omitempty"`
	MaxParticipants   *uint32 `json:"max_participants,omitempty"`
	RegistrationCount uint64  `json:"registration_count"`
	ImageURL          *string `json:"image_url,omitempty"`
}

func toEventResponse(ec repository.EventWithCount) eventResponse {
	e := ec.Event
	return eventResponse{
		ID:                e.ID,
		EventName:         e.Title,
		Category:          e.Category.Name(),
		EventDate:         e.Date.UTC().Format("2006-01-02"),
		Location:          e.Location,
		Description:       e.Description,
		MaxParticipants:   e.Capacity,
		RegistrationCount: ec.RegistrationCount,
		ImageURL:          e.ImageURL,
	}
}
