package ports

import (
	"context"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// UserRepository defines persistence for the user registry.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
