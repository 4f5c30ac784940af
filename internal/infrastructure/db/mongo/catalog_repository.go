package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

const (
	collectionBooks   = "books"
	collectionReviews = "reviews"
)

// reviewDoc is one (book, user) review. The unique index on isbn+username
// makes each upsert and delete atomic for that pair.
type reviewDoc struct {
	ISBN      string    `bson:"isbn"`
	Username  string    `bson:"username"`
	Text      string    `bson:"text"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// CatalogRepository implements ports.CatalogRepository on MongoDB. Books live
// in one collection keyed by ISBN; reviews in another so that usernames never
// become document field paths.
type CatalogRepository struct {
	books   *mongo.Collection
	reviews *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		books:   db.Collection(collectionBooks),
		reviews: db.Collection(collectionReviews),
	}
}

// FindByISBN retrieves a book together with its reviews.
func (r *CatalogRepository) FindByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Book
	if err := r.books.FindOne(ctx, bson.M{"_id": isbn}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}

	reviews, err := r.loadReviews(ctx, bson.M{"isbn": isbn})
	if err != nil {
		return nil, err
	}
	b.Reviews = reviews[isbn].Clone()
	return &b, nil
}

// List returns every book in seed order, reviews included.
func (r *CatalogRepository) List(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.books.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	var books []*domain.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	reviews, err := r.loadReviews(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		b.Reviews = reviews[b.ISBN].Clone()
	}
	return books, nil
}

func (r *CatalogRepository) UpsertReview(ctx context.Context, isbn, username, text string) (domain.Reviews, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.ensureBook(ctx, isbn); err != nil {
		return nil, err
	}

	filter := bson.M{"isbn": isbn, "username": username}
	update := bson.M{"$set": bson.M{"text": text, "updated_at": time.Now().UTC()}}
	err := retryOnDuplicateKey(func() error {
		_, err := r.reviews.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}

	return r.reviewsOf(ctx, isbn)
}

// retryOnDuplicateKey runs op again once when it loses an upsert race on a
// unique index; the second attempt matches the document the winner inserted.
func retryOnDuplicateKey(op func() error) error {
	err := op()
	if err != nil && mongo.IsDuplicateKeyError(err) {
		err = op()
	}
	return err
}

func (r *CatalogRepository) DeleteReview(ctx context.Context, isbn, username string) (domain.Reviews, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.ensureBook(ctx, isbn); err != nil {
		return nil, err
	}

	res, err := r.reviews.DeleteOne(ctx, bson.M{"isbn": isbn, "username": username})
	if err != nil {
		return nil, fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, domain.ErrReviewNotFound
	}

	return r.reviewsOf(ctx, isbn)
}

// Seed inserts the given books, replacing titles and authors of existing ones.
// The slice order becomes the listing order. Reviews carried by seed books
// are inserted only when the user has none yet.
func (r *CatalogRepository) Seed(ctx context.Context, books []*domain.Book) error {
	for i, b := range books {
		doc := bson.M{"_id": b.ISBN, "title": b.Title, "author": b.Author, "position": i}
		if _, err := r.books.ReplaceOne(ctx, bson.M{"_id": b.ISBN}, doc, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("seed book %s: %w", b.ISBN, err)
		}
		for username, text := range b.Reviews {
			filter := bson.M{"isbn": b.ISBN, "username": username}
			update := bson.M{"$setOnInsert": bson.M{"text": text, "updated_at": time.Now().UTC()}}
			if _, err := r.reviews.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
				return fmt.Errorf("seed review %s/%s: %w", b.ISBN, username, err)
			}
		}
	}
	return nil
}

// EnsureIndexes creates the unique (isbn, username) index on reviews.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isbn", Value: 1}, {Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *CatalogRepository) ensureBook(ctx context.Context, isbn string) error {
	n, err := r.books.CountDocuments(ctx, bson.M{"_id": isbn}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("find book: %w", err)
	}
	if n == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *CatalogRepository) reviewsOf(ctx context.Context, isbn string) (domain.Reviews, error) {
	byBook, err := r.loadReviews(ctx, bson.M{"isbn": isbn})
	if err != nil {
		return nil, err
	}
	return byBook[isbn].Clone(), nil
}

// loadReviews groups the matching review documents by ISBN.
func (r *CatalogRepository) loadReviews(ctx context.Context, filter bson.M) (map[string]domain.Reviews, error) {
	cur, err := r.reviews.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	out := make(map[string]domain.Reviews)
	for _, d := range docs {
		if out[d.ISBN] == nil {
			out[d.ISBN] = domain.Reviews{}
		}
		out[d.ISBN][d.Username] = d.Text
	}
	return out, nil
}
