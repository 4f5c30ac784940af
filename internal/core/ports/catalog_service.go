package ports

import (
	"context"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// CatalogService is the read-only query façade over the catalog.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	GetBook(ctx context.Context, isbn string) (*domain.Book, error)
	// BooksByAuthor and BooksByTitle match case-insensitively on the whole
	// field. An empty slice means no match.
	BooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error)
	BooksByTitle(ctx context.Context, title string) ([]*domain.Book, error)
	ReviewsOf(ctx context.Context, isbn string) (domain.Reviews, error)
}
