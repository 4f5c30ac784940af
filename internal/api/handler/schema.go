package handler

import (
	"time"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// loginRequest carries no length limits: any pair that does not match a
// registered user is rejected as invalid credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type reviewRequest struct {
	Review string `json:"review"`
}

// --- Response types ---

type messageResponse struct {
	Message string `json:"message"`
}

type bookResponse struct {
	ISBN    string            `json:"isbn"`
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Reviews map[string]string `json:"reviews"`
}

type reviewMutationResponse struct {
	Message string            `json:"message"`
	Reviews map[string]string `json:"reviews"`
}

type registerResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type loginResponse struct {
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type reviewEventResponse struct {
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	Text       string    `json:"text,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// --- Mappers ---

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ISBN:    b.ISBN,
		Title:   b.Title,
		Author:  b.Author,
		Reviews: b.Reviews.Clone(),
	}
}

func toBookResponses(books []*domain.Book) []bookResponse {
	out := make([]bookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b)
	}
	return out
}

func toReviewEventResponses(events []*domain.ReviewEvent) []reviewEventResponse {
	out := make([]reviewEventResponse, len(events))
	for i, e := range events {
		out[i] = reviewEventResponse{
			Username:   e.Username,
			Action:     string(e.Action),
			Text:       e.Text,
			OccurredAt: e.OccurredAt.UTC(),
		}
	}
	return out
}
