package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportspark/sportspark-api/internal/model"
	"github.com/sportspark/sportspark-api/internal/repository"
)

// OrganizerHandler implements organizer-scoped event management. All
// routes sit behind the JWT and organizer-role gates, so every request
// reaching these handlers acts as a verified organizer principal.
type OrganizerHandler struct {
	Events EventStore
}

func NewOrganizerHandler(events EventStore) *OrganizerHandler {
	if events == nil {
		panic("nil event store passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{Events: events}
}

type createEventReq struct {
	EventName       string  `json:"event_name"`
	Category        string  `json:"category"`
	EventDate       string  `json:"event_date"`
	Location        string  `json:"location"`
	Description     *string `json:"description"`
	MaxParticipants *uint32 `json:"max_participants"`
	ImageURL        *string `json:"image_url"`
}

// Dashboard handles GET /organizer/dashboard. Every owned event is
// annotated with its live registration count; the totals are derived
// from the same aggregate so they cannot drift from the listing.
func (h *OrganizerHandler) Dashboard(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error fetching events"})
	}

	out := make([]eventResponse, 0, len(events))
	var total uint64
	for _, ec := range events {
		out = append(out, toEventResponse(ec))
		total += ec.RegistrationCount
	}

	return c.JSON(http.StatusOK, echo.Map{
		"name":               getName(c),
		"events":             out,
		"totalRegistrations": total,
		"totalEvents":        len(out),
	})
}

// CreateEvent handles POST /organizer/create-event. Category names are
// validated against the closed enumeration; unknown names are rejected
// rather than defaulted.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.EventName = strings.TrimSpace(req.EventName)
	req.Location = strings.TrimSpace(req.Location)
	if req.EventName == "" || req.Category == "" || req.EventDate == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event name, category, date, and location are required"})
	}

	category, ok := model.CategoryByName(req.Category)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid category: " + req.Category})
	}
	date, err := parseEventDate(req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid event date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev := model.Event{
		OrganizerID: organizerID,
		Title:       req.EventName,
		Category:    category,
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.MaxParticipants,
		ImageURL:    req.ImageURL,
	}
	id, err := h.Events.Create(ctx, &ev)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error creating event"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Event created successfully",
		"eventId": id,
	})
}

// DeleteEvent handles DELETE /organizer/delete-event/:eventId. The
// repository deletes registrations first, then the event. A missing
// event and an event owned by someone else produce the same 403 so the
// response does not leak which events exist.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.DeleteOwned(ctx, eventID, organizerID); err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Event not found or access denied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error deleting event"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Event deleted successfully",
	})
}

// parseEventDate accepts the date formats clients actually send: a bare
// date, a datetime, or RFC3339.
func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	_, err := time.Parse("2006-01-02", s)
	return time.Time{}, err
}
