package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
	"github.com/Sirpyerre/book-reviews/internal/pkg/metrics"
)

// EventPublisher abstracts the activity dispatcher.
type EventPublisher interface {
	Enqueue(event ports.ReviewEventInput)
}

// ReviewService applies review mutations on behalf of a resolved identity.
type ReviewService struct {
	repo      ports.CatalogRepository
	publisher EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReviewService returns a ReviewService. publisher may be nil, in which
// case no activity is recorded.
func NewReviewService(repo ports.CatalogRepository, publisher EventPublisher, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, publisher: publisher, logger: logger, now: time.Now}
}

// Upsert adds or replaces the caller's review. Checks run in a fixed order:
// identity, text, book.
func (s *ReviewService) Upsert(ctx context.Context, in ports.UpsertReviewInput) (domain.Reviews, error) {
	const op = "upsert"

	if in.Username == "" {
		return nil, s.fail(op, domain.ErrNotAuthenticated)
	}
	if in.Text == "" {
		return nil, s.fail(op, domain.ErrReviewTextRequired)
	}

	reviews, err := s.repo.UpsertReview(ctx, in.ISBN, in.Username, in.Text)
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.publish(ports.ReviewEventInput{
		ISBN:     in.ISBN,
		Username: in.Username,
		Action:   domain.ReviewUpserted,
		Text:     in.Text,
	})
	metrics.ReviewMutationsTotal.WithLabelValues(op, "ok").Inc()
	s.logger.Info().Str("isbn", in.ISBN).Str("username", in.Username).Msg("review upserted")

	return reviews, nil
}

// Delete removes the caller's review. A second delete of the same review
// reports domain.ErrReviewNotFound.
func (s *ReviewService) Delete(ctx context.Context, in ports.DeleteReviewInput) (domain.Reviews, error) {
	const op = "delete"

	if in.Username == "" {
		return nil, s.fail(op, domain.ErrNotAuthenticated)
	}

	reviews, err := s.repo.DeleteReview(ctx, in.ISBN, in.Username)
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.publish(ports.ReviewEventInput{
		ISBN:     in.ISBN,
		Username: in.Username,
		Action:   domain.ReviewDeleted,
	})
	metrics.ReviewMutationsTotal.WithLabelValues(op, "ok").Inc()
	s.logger.Info().Str("isbn", in.ISBN).Str("username", in.Username).Msg("review deleted")

	return reviews, nil
}

func (s *ReviewService) publish(ev ports.ReviewEventInput) {
	if s.publisher == nil {
		return
	}
	ev.OccurredAt = s.now().UTC()
	s.publisher.Enqueue(ev)
}

func (s *ReviewService) fail(op string, err error) error {
	reason := failureReason(err)
	metrics.ReviewMutationsTotal.WithLabelValues(op, reason).Inc()
	if reason == "internal" {
		s.logger.Error().Err(err).Str("operation", op).Msg("review mutation failed")
	}
	return err
}

// failureReason maps an error to a low-cardinality metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthorization):
		return "unauthenticated"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
