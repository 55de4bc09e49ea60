package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PublicHandler exposes the unauthenticated event listing. The route is
// wrapped by the Redis response cache so guest browsing does not hit
// MySQL on every request.
type PublicHandler struct {
	Events EventStore
}

func NewPublicHandler(events EventStore) *PublicHandler {
	if events == nil {
		panic("nil event store passed to NewPublicHandler")
	}
	return &PublicHandler{Events: events}
}

// ListEvents handles GET /events.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error fetching events"})
	}

	out := make([]eventResponse, 0, len(events))
	for _, ec := range events {
		out = append(out, toEventResponse(ec))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}
