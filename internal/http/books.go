package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookr/internal/database/books"
	"github.com/mrlokans/bookr/internal/entities"
)

// BookStats are the listing aggregates of one book.
type BookStats struct {
	ListingCount  int64    `json:"listing_count"`
	AverageRating *float64 `json:"average_rating"`
}

// BookDetail is a catalog book with its aggregates.
type BookDetail struct {
	entities.Book
	Display string    `json:"display"`
	Stats   BookStats `json:"stats"`
}

// BooksController serves the shared catalog.
type BooksController struct {
	books BookStore
	stats BookStatsStore
}

func NewBooksController(bookStore BookStore, stats BookStatsStore) *BooksController {
	return &BooksController{books: bookStore, stats: stats}
}

// List returns catalog books, optionally filtered by author and a title
// substring.
// GET /api/books?author_id=&q=
func (bc *BooksController) List(c *gin.Context) {
	authorID, ok := parseOptionalQueryID(c, "author_id")
	if !ok {
		return
	}

	result, err := bc.books.List(c.Request.Context(), books.Filter{
		AuthorID: authorID,
		Title:    strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, newList(result))
}

// Get returns one book with its listing count and average rating.
// GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.books.GetByID(ctx, id)
	if err != nil {
		respondServiceError(c, err, "book")
		return
	}

	count, err := bc.stats.CountForBook(ctx, id)
	if err != nil {
		respondInternalError(c, err, "book listing count")
		return
	}
	avg, err := bc.stats.AverageRatingForBook(ctx, id)
	if err != nil {
		respondInternalError(c, err, "book average rating")
		return
	}

	c.JSON(http.StatusOK, BookDetail{
		Book:    *book,
		Display: book.String(),
		Stats:   BookStats{ListingCount: count, AverageRating: avg},
	})
}
