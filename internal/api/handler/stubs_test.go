package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/book-reviews/internal/api/middleware"
	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

type stubCatalogService struct {
	listFn     func(ctx context.Context) ([]*domain.Book, error)
	getFn      func(ctx context.Context, isbn string) (*domain.Book, error)
	byAuthorFn func(ctx context.Context, author string) ([]*domain.Book, error)
	byTitleFn  func(ctx context.Context, title string) ([]*domain.Book, error)
	reviewsFn  func(ctx context.Context, isbn string) (domain.Reviews, error)
}

func (s *stubCatalogService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.listFn(ctx)
}

func (s *stubCatalogService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.getFn(ctx, isbn)
}

func (s *stubCatalogService) BooksByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	return s.byAuthorFn(ctx, author)
}

func (s *stubCatalogService) BooksByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	return s.byTitleFn(ctx, title)
}

func (s *stubCatalogService) ReviewsOf(ctx context.Context, isbn string) (domain.Reviews, error) {
	return s.reviewsFn(ctx, isbn)
}

type stubActivity struct {
	historyFn func(ctx context.Context, isbn string) ([]*domain.ReviewEvent, error)
}

func (s *stubActivity) Record(context.Context, ports.ReviewEventInput) error { return nil }

func (s *stubActivity) History(ctx context.Context, isbn string) ([]*domain.ReviewEvent, error) {
	return s.historyFn(ctx, isbn)
}

type stubReviewService struct {
	upsertFn func(ctx context.Context, in ports.UpsertReviewInput) (domain.Reviews, error)
	deleteFn func(ctx context.Context, in ports.DeleteReviewInput) (domain.Reviews, error)
}

func (s *stubReviewService) Upsert(ctx context.Context, in ports.UpsertReviewInput) (domain.Reviews, error) {
	return s.upsertFn(ctx, in)
}

func (s *stubReviewService) Delete(ctx context.Context, in ports.DeleteReviewInput) (domain.Reviews, error) {
	return s.deleteFn(ctx, in)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) ResolveIdentity(context.Context, string) (string, error) {
	return "", domain.ErrNotAuthenticated
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// withIdentity mimics what the Session middleware stores on the context.
func withIdentity(c echo.Context, username, token string) {
	if token != "" {
		c.Set(middleware.ContextToken, token)
	}
	if username != "" {
		c.Set(middleware.ContextUsername, username)
	}
}
