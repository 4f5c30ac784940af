package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

const collectionReviewEvents = "review_events"

// ReviewEventRepository implements ports.ReviewEventRepository using MongoDB.
type ReviewEventRepository struct {
	col *mongo.Collection
}

// NewReviewEventRepository creates a new ReviewEventRepository.
func NewReviewEventRepository(db *mongo.Database) ports.ReviewEventRepository {
	return &ReviewEventRepository{col: db.Collection(collectionReviewEvents)}
}

// Insert persists an event to the review_events audit collection.
func (r *ReviewEventRepository) Insert(ctx context.Context, event *domain.ReviewEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"isbn":        event.ISBN,
		"username":    event.Username,
		"action":      string(event.Action),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Text != "" {
		doc["text"] = event.Text
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// ListByISBN returns the events of one book in the order they occurred.
func (r *ReviewEventRepository) ListByISBN(ctx context.Context, isbn string) ([]*domain.ReviewEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"isbn": isbn}, opts)
	if err != nil {
		return nil, fmt.Errorf("find review events: %w", err)
	}

	var events []*domain.ReviewEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode review events: %w", err)
	}
	return events, nil
}
