package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

func TestReviewHandler_Upsert_QueryParam(t *testing.T) {
	e := newTestEcho()
	var got ports.UpsertReviewInput
	h := NewReviewHandler(&stubReviewService{
		upsertFn: func(_ context.Context, in ports.UpsertReviewInput) (domain.Reviews, error) {
			got = in
			return domain.Reviews{in.Username: in.Text}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/customer/auth/review/123?review=great+book", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("isbn")
	c.SetParamValues("123")
	withIdentity(c, "alice", "tok")

	if err := h.Upsert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.ISBN != "123" || got.Username != "alice" || got.Text != "great book" {
		t.Fatalf("unexpected input %+v", got)
	}

	var resp reviewMutationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Review successfully added/updated" || resp.Reviews["alice"] != "great book" {
		t.Fatalf("unexpected payload %+v", resp)
	}
}

func TestReviewHandler_Upsert_JSONBody(t *testing.T) {
	e := newTestEcho()
	var got ports.UpsertReviewInput
	h := NewReviewHandler(&stubReviewService{
		upsertFn: func(_ context.Context, in ports.UpsertReviewInput) (domain.Reviews, error) {
			got = in
			return domain.Reviews{in.Username: in.Text}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/customer/auth/review/123", strings.NewReader(`{"review":"from body"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("isbn")
	c.SetParamValues("123")
	withIdentity(c, "alice", "tok")

	if err := h.Upsert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Text != "from body" {
		t.Fatalf("expected body text, got %q", got.Text)
	}
}

func TestReviewHandler_Upsert_IgnoresUsernameInRequest(t *testing.T) {
	e := newTestEcho()
	var got ports.UpsertReviewInput
	h := NewReviewHandler(&stubReviewService{
		upsertFn: func(_ context.Context, in ports.UpsertReviewInput) (domain.Reviews, error) {
			got = in
			return nil, domain.ErrNotAuthenticated
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/customer/auth/review/123?review=x&username=mallory", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("isbn")
	c.SetParamValues("123")

	if err := h.Upsert(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if got.Username != "" {
		t.Fatalf("username must come only from the session, got %q", got.Username)
	}
}

func TestReviewHandler_Upsert_MalformedBodyCountsAsNoText(t *testing.T) {
	e := newTestEcho()
	var got ports.UpsertReviewInput
	h := NewReviewHandler(&stubReviewService{
		upsertFn: func(_ context.Context, in ports.UpsertReviewInput) (domain.Reviews, error) {
			got = in
			return nil, domain.ErrReviewTextRequired
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/customer/auth/review/123", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("isbn")
	c.SetParamValues("123")
	withIdentity(c, "alice", "tok")

	if err := h.Upsert(c); !errors.Is(err, domain.ErrReviewTextRequired) {
		t.Fatalf("expected ErrReviewTextRequired, got %v", err)
	}
	if got.Text != "" {
		t.Fatalf("expected empty text, got %q", got.Text)
	}
}

func TestReviewHandler_Delete(t *testing.T) {
	e := newTestEcho()
	h := NewReviewHandler(&stubReviewService{
		deleteFn: func(_ context.Context, in ports.DeleteReviewInput) (domain.Reviews, error) {
			if in.Username != "alice" || in.ISBN != "123" {
				t.Fatalf("unexpected input %+v", in)
			}
			return domain.Reviews{}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/customer/auth/review/123", nil), rec)
	c.SetParamNames("isbn")
	c.SetParamValues("123")
	withIdentity(c, "alice", "tok")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Review successfully deleted" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
	reviews, ok := resp["reviews"].(map[string]any)
	if !ok || len(reviews) != 0 {
		t.Fatalf("expected empty reviews object, got %v", resp["reviews"])
	}
}
