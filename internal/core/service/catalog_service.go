package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

// CatalogService answers read-only catalog queries.
type CatalogService struct {
	repo   ports.CatalogRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list books")
		return nil, err
	}
	return books, nil
}

func (s *CatalogService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

func (s *CatalogService) BooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	return s.filter(ctx, func(b *domain.Book) bool { return strings.EqualFold(b.Author, author) })
}

func (s *CatalogService) BooksByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	return s.filter(ctx, func(b *domain.Book) bool { return strings.EqualFold(b.Title, title) })
}

func (s *CatalogService) ReviewsOf(ctx context.Context, isbn string) (domain.Reviews, error) {
	book, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return book.Reviews.Clone(), nil
}

// filter keeps catalog order so results are stable for a given snapshot.
func (s *CatalogService) filter(ctx context.Context, match func(*domain.Book) bool) ([]*domain.Book, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Book, 0)
	for _, b := range books {
		if match(b) {
			out = append(out, b)
		}
	}
	return out, nil
}
