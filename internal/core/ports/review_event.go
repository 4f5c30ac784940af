package ports

import (
	"context"
	"time"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// ReviewEventInput is the DTO handed from the ledger to the activity dispatcher.
type ReviewEventInput struct {
	ISBN       string
	Username   string
	Action     domain.ReviewAction
	Text       string
	OccurredAt time.Time
}

// ReviewEventRepository persists the review activity log.
type ReviewEventRepository interface {
	Insert(ctx context.Context, event *domain.ReviewEvent) error
	// ListByISBN returns the events of one book, oldest first.
	ListByISBN(ctx context.Context, isbn string) ([]*domain.ReviewEvent, error)
}

// ReviewEventService records and lists review activity.
type ReviewEventService interface {
	Record(ctx context.Context, event ReviewEventInput) error
	History(ctx context.Context, isbn string) ([]*domain.ReviewEvent, error)
}
