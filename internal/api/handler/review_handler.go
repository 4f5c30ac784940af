package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

// ReviewHandler serves the review mutation routes. The username always comes
// from the resolved session, never from the request.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Upsert handles PUT /customer/auth/review/:isbn.
//
// @Summary      Add or replace the caller's review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        isbn    path      string         true   "Book ISBN"
// @Param        review  query     string         false  "Review text"
// @Param        body    body      reviewRequest  false  "Review text, used when the query parameter is absent"
// @Success      200     {object}  reviewMutationResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /customer/auth/review/{isbn} [put]
func (h *ReviewHandler) Upsert(c echo.Context) error {
	reviews, err := h.service.Upsert(c.Request().Context(), ports.UpsertReviewInput{
		ISBN:     c.Param("isbn"),
		Username: identity(c),
		Text:     reviewText(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviewMutationResponse{
		Message: "Review successfully added/updated",
		Reviews: reviews,
	})
}

// Delete handles DELETE /customer/auth/review/:isbn.
//
// @Summary      Delete the caller's review
// @Tags         reviews
// @Produce      json
// @Security     SessionAuth
// @Param        isbn  path      string  true  "Book ISBN"
// @Success      200   {object}  reviewMutationResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /customer/auth/review/{isbn} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	reviews, err := h.service.Delete(c.Request().Context(), ports.DeleteReviewInput{
		ISBN:     c.Param("isbn"),
		Username: identity(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviewMutationResponse{
		Message: "Review successfully deleted",
		Reviews: reviews,
	})
}

// reviewText reads the review from the query string, falling back to a JSON
// body. An unreadable body counts as no text; the ledger reports it after
// checking the caller's identity.
func reviewText(c echo.Context) string {
	if text := c.QueryParam("review"); text != "" {
		return text
	}
	if c.Request().ContentLength == 0 {
		return ""
	}
	var req reviewRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return ""
	}
	return req.Review
}
