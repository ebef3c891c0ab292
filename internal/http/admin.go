package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/forms"
)

// AdminController manages the shared author and book catalog.
type AdminController struct {
	authors AuthorStore
	books   BookStore
}

func NewAdminController(authors AuthorStore, bookStore BookStore) *AdminController {
	return &AdminController{authors: authors, books: bookStore}
}

// ListAuthors returns every author ordered by name.
// GET /api/admin/authors
func (ac *AdminController) ListAuthors(c *gin.Context) {
	authors, err := ac.authors.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, newList(authors))
}

// CreateAuthor adds an author. A duplicate name is a conflict.
// POST /api/admin/authors
func (ac *AdminController) CreateAuthor(c *gin.Context) {
	var in forms.AuthorInput
	if !bindJSON(c, &in) {
		return
	}

	author := &entities.Author{FirstName: in.FirstName, LastName: in.LastName}
	if err := ac.authors.Create(c.Request.Context(), author); err != nil {
		respondServiceError(c, err, "author")
		return
	}

	log.Info().Uint("author_id", author.ID).Str("author", author.String()).Msg("Author created")
	c.JSON(http.StatusCreated, author)
}

// DeleteAuthor removes an author together with their books and listings.
// DELETE /api/admin/authors/:id
func (ac *AdminController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.authors.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "author")
		return
	}
	log.Info().Uint("author_id", id).Msg("Author deleted")
	c.Status(http.StatusNoContent)
}

// CreateBook adds a book for an existing author.
// POST /api/admin/books
func (ac *AdminController) CreateBook(c *gin.Context) {
	var in forms.BookInput
	if !bindJSON(c, &in) {
		return
	}

	ctx := c.Request.Context()
	author, err := ac.authors.GetByID(ctx, in.AuthorID)
	if err != nil {
		respondServiceError(c, err, "author")
		return
	}

	book := &entities.Book{
		AuthorID:       author.ID,
		Title:          in.Title,
		FirstPublished: in.FirstPublished,
		Cover:          in.Cover,
	}
	if err := ac.books.Create(ctx, book); err != nil {
		respondServiceError(c, err, "book")
		return
	}
	book.Author = *author

	log.Info().Uint("book_id", book.ID).Str("book", book.String()).Msg("Book created")
	c.JSON(http.StatusCreated, book)
}

// DeleteBook removes a book and every listing of it.
// DELETE /api/admin/books/:id
func (ac *AdminController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.books.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "book")
		return
	}
	log.Info().Uint("book_id", id).Msg("Book deleted")
	c.Status(http.StatusNoContent)
}
