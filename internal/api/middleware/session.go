package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

const (
	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "session"

	// Context keys set by Session.
	ContextUsername = "username"
	ContextToken    = "session_token"
)

// IdentityResolver resolves a session token to a username.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (string, error)
}

// Session attaches the caller's identity to the context when a valid session
// token is present. Missing or invalid tokens leave the request anonymous and
// the review ledger decides what an anonymous caller may do. Session store
// faults are returned as errors, so mount it only on routes that need an
// identity.
func Session(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return next(c)
			}
			c.Set(ContextToken, token)

			username, err := resolver.ResolveIdentity(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrNotAuthenticated) {
					return next(c)
				}
				return err
			}

			c.Set(ContextUsername, username)
			return next(c)
		}
	}
}

// TokenFromRequest returns the bearer token from the Authorization header,
// falling back to the session cookie.
func TokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
