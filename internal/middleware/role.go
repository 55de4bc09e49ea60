package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireOrganizer enforces that the authenticated caller carries the
// organizer role. It assumes JWTAuth has already stored the "role" claim
// in the context; anything else is rejected with 403 before the handler
// runs, so organizer workflows never see a non-organizer principal.
func RequireOrganizer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != "organizer" {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied. Organizer role required."})
			}
			return next(c)
		}
	}
}
