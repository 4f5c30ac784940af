package ports

import (
	"context"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// CatalogRepository is the Catalog Store. Books are read-only; the review
// mutations are exposed here so each implementation can apply them atomically
// per (book, username).
type CatalogRepository interface {
	// FindByISBN returns a snapshot of the book or domain.ErrBookNotFound.
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	// List returns snapshots of every book in stable catalog order.
	List(ctx context.Context) ([]*domain.Book, error)

	// UpsertReview sets reviews[username] = text and returns the updated map.
	UpsertReview(ctx context.Context, isbn, username, text string) (domain.Reviews, error)
	// DeleteReview removes reviews[username] and returns the updated map.
	// Returns domain.ErrReviewNotFound when the user has no review on the book.
	DeleteReview(ctx context.Context, isbn, username string) (domain.Reviews, error)
}
