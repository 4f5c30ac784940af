package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

type stubCatalogRepo struct {
	mu    sync.Mutex
	order []string
	books map[string]*domain.Book
	err   error
}

func newStubCatalogRepo(books ...*domain.Book) *stubCatalogRepo {
	r := &stubCatalogRepo{books: make(map[string]*domain.Book)}
	for _, b := range books {
		c := b.Clone()
		if c.Reviews == nil {
			c.Reviews = domain.Reviews{}
		}
		r.books[b.ISBN] = c
		r.order = append(r.order, b.ISBN)
	}
	return r
}

func (r *stubCatalogRepo) FindByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return b.Clone(), nil
}

func (r *stubCatalogRepo) List(_ context.Context) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Book, 0, len(r.order))
	for _, isbn := range r.order {
		out = append(out, r.books[isbn].Clone())
	}
	return out, nil
}

func (r *stubCatalogRepo) UpsertReview(_ context.Context, isbn, username, text string) (domain.Reviews, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	b.Reviews[username] = text
	return b.Reviews.Clone(), nil
}

func (r *stubCatalogRepo) DeleteReview(_ context.Context, isbn, username string) (domain.Reviews, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.books[isbn]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if _, exists := b.Reviews[username]; !exists {
		return nil, domain.ErrReviewNotFound
	}
	delete(b.Reviews, username)
	return b.Reviews.Clone(), nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []ports.ReviewEventInput
}

func (p *stubPublisher) Enqueue(event ports.ReviewEventInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	u := *user
	r.users[u.Username] = &u
	created := u
	return &created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	findErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session) error {
	s.sessions[session.ID] = *session
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubEventRepo struct {
	events    []*domain.ReviewEvent
	insertErr error
}

func (r *stubEventRepo) Insert(_ context.Context, event *domain.ReviewEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubEventRepo) ListByISBN(_ context.Context, isbn string) ([]*domain.ReviewEvent, error) {
	var out []*domain.ReviewEvent
	for _, e := range r.events {
		if e.ISBN == isbn {
			out = append(out, e)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
