package memory

import (
	"context"
	"sync"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// ReviewEventRepository is an append-only in-memory activity log.
type ReviewEventRepository struct {
	mu     sync.RWMutex
	byISBN map[string][]domain.ReviewEvent
}

func NewReviewEventRepository() *ReviewEventRepository {
	return &ReviewEventRepository{byISBN: make(map[string][]domain.ReviewEvent)}
}

func (r *ReviewEventRepository) Insert(_ context.Context, event *domain.ReviewEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byISBN[event.ISBN] = append(r.byISBN[event.ISBN], *event)
	return nil
}

func (r *ReviewEventRepository) ListByISBN(_ context.Context, isbn string) ([]*domain.ReviewEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.byISBN[isbn]
	out := make([]*domain.ReviewEvent, len(events))
	for i := range events {
		ev := events[i]
		out[i] = &ev
	}
	return out, nil
}
