package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/book-reviews/internal/api/middleware"
)

// identity returns the username resolved by the Session middleware, or ""
// for anonymous callers. It is the only source of the username handed to
// the review ledger.
func identity(c echo.Context) string {
	username, _ := c.Get(middleware.ContextUsername).(string)
	return username
}

// sessionToken returns the raw token seen by the Session middleware.
func sessionToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextToken).(string)
	return token
}
