package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer session token
// and injects the token's subject, role and name claims into the request
// context. The provided secret must match the one used when issuing
// tokens. A request without a bearer token is rejected with 403; a token
// with a bad signature or past its expiry is rejected with 401. Handlers
// behind this middleware can treat the identity in the context as already
// verified and read it via `c.Get("user_id")`, `c.Get("role")` and
// `c.Get("name")`.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			// Absence of a token is distinct from an invalid one.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "No token provided"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with the HS256 signing method and our secret. The
			// callback supplies the signing key and pins the algorithm;
			// tokens signed with anything else are rejected. Expiry is
			// validated by the parser via the exp claim.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}

			// Store the identity claims in the context for handlers and
			// downstream middleware. Type assertions are left to consumers.
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			c.Set("name", claims["name"])
			return next(c)
		}
	}
}
