package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
	"github.com/Sirpyerre/book-reviews/internal/pkg/metrics"
)

type reviewEventService struct {
	catalog ports.CatalogRepository
	events  ports.ReviewEventRepository
	log     zerolog.Logger
}

// NewReviewEventService returns a ReviewEventService implementation.
func NewReviewEventService(catalog ports.CatalogRepository, events ports.ReviewEventRepository, log zerolog.Logger) ports.ReviewEventService {
	return &reviewEventService{catalog: catalog, events: events, log: log}
}

// Record persists a single review mutation to the activity log.
func (s *reviewEventService) Record(ctx context.Context, in ports.ReviewEventInput) error {
	start := time.Now()

	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	event := &domain.ReviewEvent{
		ISBN:       in.ISBN,
		Username:   in.Username,
		Action:     in.Action,
		Text:       in.Text,
		OccurredAt: occurred,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		metrics.ReviewEventsErrorsTotal.WithLabelValues(string(in.Action)).Inc()
		return fmt.Errorf("record review event: %w", err)
	}

	metrics.ReviewEventsRecordedTotal.WithLabelValues(string(in.Action)).Inc()
	metrics.ReviewEventRecordDuration.Observe(time.Since(start).Seconds())

	s.log.Debug().
		Str("isbn", in.ISBN).
		Str("username", in.Username).
		Str("action", string(in.Action)).
		Msg("review event recorded")

	return nil
}

// History returns the activity of one book, or domain.ErrBookNotFound.
func (s *reviewEventService) History(ctx context.Context, isbn string) ([]*domain.ReviewEvent, error) {
	if _, err := s.catalog.FindByISBN(ctx, isbn); err != nil {
		return nil, err
	}
	events, err := s.events.ListByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("list review events: %w", err)
	}
	if events == nil {
		events = []*domain.ReviewEvent{}
	}
	return events, nil
}
