// Package memory holds the in-process implementations of the storage ports.
// They are the default backends and the ones used by tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// bookEntry guards one book's reviews. Title and author never change, so
// only the reviews map needs the lock.
type bookEntry struct {
	mu      sync.RWMutex
	book    domain.Book
	reviews domain.Reviews
}

func (e *bookEntry) snapshot() *domain.Book {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b := e.book
	b.Reviews = e.reviews.Clone()
	return &b
}

// CatalogStore is an in-memory Catalog Store. The index of books is built
// once and never mutated afterwards, so lookups take no lock and writes to
// one book never block another.
type CatalogStore struct {
	order []string
	books map[string]*bookEntry
}

// NewCatalogStore builds a store from the seed books, preserving their order.
// Reviews present in the seed are copied in.
func NewCatalogStore(seed []*domain.Book) (*CatalogStore, error) {
	s := &CatalogStore{
		order: make([]string, 0, len(seed)),
		books: make(map[string]*bookEntry, len(seed)),
	}
	for _, b := range seed {
		if b == nil || b.ISBN == "" {
			return nil, fmt.Errorf("%w: book without isbn", domain.ErrInvalidSeed)
		}
		if _, dup := s.books[b.ISBN]; dup {
			return nil, fmt.Errorf("%w: duplicate isbn %q", domain.ErrInvalidSeed, b.ISBN)
		}
		s.books[b.ISBN] = &bookEntry{
			book:    domain.Book{ISBN: b.ISBN, Title: b.Title, Author: b.Author},
			reviews: b.Reviews.Clone(),
		}
		s.order = append(s.order, b.ISBN)
	}
	return s, nil
}

func (s *CatalogStore) FindByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	e, ok := s.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return e.snapshot(), nil
}

func (s *CatalogStore) List(_ context.Context) ([]*domain.Book, error) {
	out := make([]*domain.Book, 0, len(s.order))
	for _, isbn := range s.order {
		out = append(out, s.books[isbn].snapshot())
	}
	return out, nil
}

// UpsertReview overwrites the user's review under the book's write lock.
func (s *CatalogStore) UpsertReview(_ context.Context, isbn, username, text string) (domain.Reviews, error) {
	e, ok := s.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.reviews[username] = text
	return e.reviews.Clone(), nil
}

func (s *CatalogStore) DeleteReview(_ context.Context, isbn, username string) (domain.Reviews, error) {
	e, ok := s.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.reviews[username]; !exists {
		return nil, domain.ErrReviewNotFound
	}
	delete(e.reviews, username)
	return e.reviews.Clone(), nil
}
