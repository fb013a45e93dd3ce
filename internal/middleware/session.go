package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/auth"
)

// Context keys written by SessionAuth and read by handlers.
const (
	ContextIdentity = "identity"
	ContextUserID   = "user_id"
	ContextRole     = "role"
)

// TokenExtractor pulls a raw bearer token out of one transport carrier.  A
// deployment configures exactly one extractor per route group.
type TokenExtractor func(c echo.Context) (string, bool)

// FromAuthHeader extracts the token from "Authorization: Bearer <token>".
func FromAuthHeader() TokenExtractor {
	return func(c echo.Context) (string, bool) {
		header := c.Request().Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
}

// FromCookie extracts the token from the named cookie, using the tolerant
// decoder in ParseCookies rather than net/http cookie parsing.
func FromCookie(name string) TokenExtractor {
	return func(c echo.Context) (string, bool) {
		cookies := ParseCookies(c.Request().Header.Get("Cookie"))
		token, ok := cookies[name]
		return token, ok && token != ""
	}
}

// SessionAuth gates protected routes.  It extracts the bearer token from
// the configured carrier, verifies it, and attaches the identity to the
// request context.  Every client-side failure (no carrier, malformed
// carrier, bad signature, expired) gets the same 401 body; a missing
// signing secret is an operator error and reported as 500 instead.
func SessionAuth(secret string, extract TokenExtractor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server misconfigured"})
			}
			raw, ok := extract(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			ident, err := auth.Verify(secret, raw)
			if err != nil {
				if errors.Is(err, auth.ErrNoSecret) {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server misconfigured"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			c.Set(ContextIdentity, ident)
			c.Set(ContextUserID, ident.ID)
			c.Set(ContextRole, ident.Role)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity attached by SessionAuth.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	ident, ok := c.Get(ContextIdentity).(auth.Identity)
	return ident, ok
}
