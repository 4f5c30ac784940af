package ports

import (
	"context"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// SessionStore keeps server-side session records keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	// Find returns domain.ErrSessionNotFound for unknown or expired ids.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
