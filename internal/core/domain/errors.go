package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of these so callers can classify
// failures with errors.Is without knowing every sentinel.
var (
	ErrValidation    = errors.New("invalid input")
	ErrAuthorization = errors.New("not authenticated")
	ErrNotFound      = errors.New("not found")
)

var (
	ErrReviewTextRequired = fmt.Errorf("%w: review text is required", ErrValidation)
	ErrMissingCredentials = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrInvalidSeed        = fmt.Errorf("%w: invalid seed data", ErrValidation)

	ErrNotAuthenticated = fmt.Errorf("user %w", ErrAuthorization)

	ErrBookNotFound    = fmt.Errorf("book %w", ErrNotFound)
	ErrReviewNotFound  = fmt.Errorf("review %w", ErrNotFound)
	ErrNoBooksMatched  = fmt.Errorf("no matching books: %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
)
