package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
)

// BookHandler serves the public, read-only catalog routes.
type BookHandler struct {
	catalog  ports.CatalogService
	activity ports.ReviewEventService
}

func NewBookHandler(catalog ports.CatalogService, activity ports.ReviewEventService) *BookHandler {
	return &BookHandler{catalog: catalog, activity: activity}
}

// List handles GET /.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {array}   bookResponse
// @Failure      500  {object}  errorResponse
// @Router       / [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.catalog.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponses(books))
}

// GetByISBN handles GET /isbn/:isbn.
//
// @Summary      Get a book by ISBN
// @Tags         books
// @Produce      json
// @Param        isbn  path      string  true  "Book ISBN"
// @Success      200   {object}  bookResponse
// @Failure      404   {object}  errorResponse
// @Router       /isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c echo.Context) error {
	book, err := h.catalog.GetBook(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// ByAuthor handles GET /author/:author.
//
// @Summary      Find books by author
// @Description  Case-insensitive match on the whole author name.
// @Tags         books
// @Produce      json
// @Param        author  path      string  true  "Author name"
// @Success      200     {array}   bookResponse
// @Failure      404     {object}  errorResponse
// @Router       /author/{author} [get]
func (h *BookHandler) ByAuthor(c echo.Context) error {
	books, err := h.catalog.BooksByAuthor(c.Request().Context(), c.Param("author"))
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return domain.ErrNoBooksMatched
	}
	return c.JSON(http.StatusOK, toBookResponses(books))
}

// ByTitle handles GET /title/:title.
//
// @Summary      Find books by title
// @Description  Case-insensitive match on the whole title.
// @Tags         books
// @Produce      json
// @Param        title  path      string  true  "Book title"
// @Success      200    {array}   bookResponse
// @Failure      404    {object}  errorResponse
// @Router       /title/{title} [get]
func (h *BookHandler) ByTitle(c echo.Context) error {
	books, err := h.catalog.BooksByTitle(c.Request().Context(), c.Param("title"))
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return domain.ErrNoBooksMatched
	}
	return c.JSON(http.StatusOK, toBookResponses(books))
}

// Reviews handles GET /review/:isbn.
//
// @Summary      Get the reviews of a book
// @Tags         reviews
// @Produce      json
// @Param        isbn  path      string  true  "Book ISBN"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  errorResponse
// @Router       /review/{isbn} [get]
func (h *BookHandler) Reviews(c echo.Context) error {
	reviews, err := h.catalog.ReviewsOf(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// History handles GET /review/:isbn/history.
//
// @Summary      Review activity of a book
// @Tags         reviews
// @Produce      json
// @Param        isbn  path      string  true  "Book ISBN"
// @Success      200   {array}   reviewEventResponse
// @Failure      404   {object}  errorResponse
// @Router       /review/{isbn}/history [get]
func (h *BookHandler) History(c echo.Context) error {
	events, err := h.activity.History(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewEventResponses(events))
}
