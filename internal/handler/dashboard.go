package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the participant dashboard: the caller's name,
// how many events they are registered for and the full event feed.
type DashboardHandler struct {
	Events        EventStore
	Registrations RegistrationStore
}

func NewDashboardHandler(events EventStore, regs RegistrationStore) *DashboardHandler {
	if events == nil || regs == nil {
		panic("nil store passed to NewDashboardHandler")
	}
	return &DashboardHandler{Events: events, Registrations: regs}
}

// Dashboard handles GET /dashboard.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	registered, err := h.Registrations.CountForUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error fetching registration count"})
	}
	events, err := h.Events.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error fetching events"})
	}

	out := make([]eventResponse, 0, len(events))
	for _, ec := range events {
		out = append(out, toEventResponse(ec))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"name":            getName(c),
		"registeredCount": registered,
		"events":          out,
	})
}
