package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportspark/sportspark-api/internal/queue"
	"github.com/sportspark/sportspark-api/internal/repository"
)

// RegistrationHandler implements the event-registration workflow: a
// check-then-act sequence of store calls with no enclosing transaction.
// The pre-checks exist to produce precise error messages; the UNIQUE
// constraint hit at insert time is the authoritative enforcement of the
// one-registration-per-user-per-event invariant.
type RegistrationHandler struct {
	Users         UserStore
	Events        EventStore
	Registrations RegistrationStore
	Publisher     RegistrationPublisher // optional; nil disables publishing
}

func NewRegistrationHandler(users UserStore, events EventStore, regs RegistrationStore, pub RegistrationPublisher) *RegistrationHandler {
	if users == nil || events == nil || regs == nil {
		panic("nil store passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{Users: users, Events: events, Registrations: regs, Publisher: pub}
}

type registerEventReq struct {
	EventID uint64 `json:"eventId"`
}

// RegisterForEvent handles POST /auth/register-event. Sequence:
// event exists -> capacity not exhausted -> no prior registration ->
// user still exists -> insert -> best-effort counter bump and publish.
func (h *RegistrationHandler) RegisterForEvent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	var req registerEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "eventId is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error while checking event"})
	}

	// Capacity is checked against the live aggregate, not the cached
	// counter, so a stale cache can never admit an extra participant.
	if ev.Capacity != nil {
		count, err := h.Registrations.CountForEvent(ctx, ev.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error while checking event"})
		}
		if count >= uint64(*ev.Capacity) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event is full"})
		}
	}

	exists, err := h.Registrations.Exists(ctx, userID, ev.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error while checking registration"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "You are already registered for this event"})
	}

	// Defensive re-check that the acting user still exists.
	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error while checking user"})
	}

	regID, err := h.Registrations.Create(ctx, userID, ev.ID)
	if err != nil {
		if err == repository.ErrAlreadyRegistered {
			// Lost the race against a concurrent duplicate insert.
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "You are already registered for this event"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error while registering"})
	}

	// Cached counter is best-effort: the repository logs the failure and
	// the registration stands either way.
	_ = h.Events.BumpRegistrationCount(ctx, ev.ID)

	if h.Publisher != nil {
		confirmed := queue.RegistrationConfirmedEvent{
			RegistrationID: regID,
			UserID:         userID,
			EventID:        ev.ID,
			EventTitle:     ev.Title,
			Category:       ev.Category.Name(),
			Location:       ev.Location,
			EventDate:      ev.Date.UTC().Format("2006-01-02"),
			ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pcancel()
			if err := h.Publisher.PublishRegistrationConfirmed(pctx, confirmed); err != nil {
				log.Printf("registration: publish confirmation for id=%d failed: %v", regID, err)
			}
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Event registered successfully",
	})
}
