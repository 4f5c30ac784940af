package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

func TestReviewEventService_Record(t *testing.T) {
	events := &stubEventRepo{}
	svc := NewReviewEventService(newTestCatalog(), events, zerolog.Nop())
	at := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	err := svc.Record(context.Background(), ports.ReviewEventInput{
		ISBN: "1", Username: "alice", Action: domain.ReviewUpserted, Text: "good", OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(events.events) != 1 {
		t.Fatalf("expected one stored event, got %d", len(events.events))
	}
	ev := events.events[0]
	if ev.Username != "alice" || ev.Text != "good" || !ev.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestReviewEventService_Record_DefaultsTimestamp(t *testing.T) {
	events := &stubEventRepo{}
	svc := NewReviewEventService(newTestCatalog(), events, zerolog.Nop())

	_ = svc.Record(context.Background(), ports.ReviewEventInput{ISBN: "1", Username: "alice", Action: domain.ReviewDeleted})
	if events.events[0].OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be filled")
	}
}

func TestReviewEventService_Record_StoreError(t *testing.T) {
	events := &stubEventRepo{insertErr: errStoreDown}
	svc := NewReviewEventService(newTestCatalog(), events, zerolog.Nop())

	err := svc.Record(context.Background(), ports.ReviewEventInput{ISBN: "1", Action: domain.ReviewDeleted})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestReviewEventService_History(t *testing.T) {
	events := &stubEventRepo{}
	svc := NewReviewEventService(newTestCatalog(), events, zerolog.Nop())
	ctx := context.Background()

	history, err := svc.History(ctx, "1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", history)
	}

	_ = svc.Record(ctx, ports.ReviewEventInput{ISBN: "1", Username: "alice", Action: domain.ReviewUpserted, Text: "a"})
	_ = svc.Record(ctx, ports.ReviewEventInput{ISBN: "2", Username: "bob", Action: domain.ReviewUpserted, Text: "b"})

	history, _ = svc.History(ctx, "1")
	if len(history) != 1 || history[0].Username != "alice" {
		t.Fatalf("unexpected history %+v", history)
	}

	if _, err := svc.History(ctx, "99"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
