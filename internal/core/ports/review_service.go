package ports

import (
	"context"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// UpsertReviewInput carries an add-or-replace request. Username is the
// resolved identity of the caller, never a value taken from the request.
type UpsertReviewInput struct {
	ISBN     string
	Username string
	Text     string
}

// DeleteReviewInput carries a delete request for the caller's own review.
type DeleteReviewInput struct {
	ISBN     string
	Username string
}

// ReviewService is the Review Ledger.
type ReviewService interface {
	Upsert(ctx context.Context, input UpsertReviewInput) (domain.Reviews, error)
	Delete(ctx context.Context, input DeleteReviewInput) (domain.Reviews, error)
}
