package ports

import (
	"context"
	"time"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	User      *domain.User
	ExpiresAt time.Time
}

// AuthService covers registration, login and the identity gate.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	// ResolveIdentity returns the username bound to token, or
	// domain.ErrNotAuthenticated when there is no valid session.
	ResolveIdentity(ctx context.Context, token string) (string, error)
}
