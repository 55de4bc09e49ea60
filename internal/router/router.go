package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/sportspark/sportspark-api/internal/handler"    // handlers implement the business logic
	"github.com/sportspark/sportspark-api/internal/middleware" // middleware for JWT authentication and role enforcement
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Registration *handler.RegistrationHandler
	Dashboard    *handler.DashboardHandler
	Organizer    *handler.OrganizerHandler
	Public       *handler.PublicHandler
}

// RegisterRoutes registers the full route table on the provided Echo
// instance. Signup, login, health and the public listing are open; the
// dashboard and register-event routes require a valid session token; the
// organizer routes additionally require the organizer role. The cache
// middleware is applied only to the public listing.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Unauthenticated identity operations.
	a := e.Group("/auth")
	a.POST("/signup", h.Auth.Signup)
	a.POST("/login", h.Auth.Login)

	// Public browse. Guests can inspect events before signing up; the
	// response cache keeps repeated browses off MySQL.
	if cache != nil {
		e.GET("/events", h.Public.ListEvents, cache)
	} else {
		e.GET("/events", h.Public.ListEvents)
	}

	// Registration lives under /auth for compatibility with the existing
	// frontend, but unlike signup/login it requires a session token.
	a.POST("/register-event", h.Registration.RegisterForEvent, middleware.JWTAuth(jwtSecret))

	// Participant dashboard.
	e.GET("/dashboard", h.Dashboard.Dashboard, middleware.JWTAuth(jwtSecret))

	// Organizer workflows: token gate first, then the role gate, so a
	// non-organizer never reaches a handler.
	org := e.Group("/organizer")
	org.Use(middleware.JWTAuth(jwtSecret))
	org.Use(middleware.RequireOrganizer())
	org.GET("/dashboard", h.Organizer.Dashboard)
	org.POST("/create-event", h.Organizer.CreateEvent)
	org.DELETE("/delete-event/:eventId", h.Organizer.DeleteEvent)
}
