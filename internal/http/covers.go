package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/covers"
)

// CoversController serves locally cached cover images.
type CoversController struct {
	cache    CoverStore
	books    BookStore
	listings ListingStore
}

func NewCoversController(cache CoverStore, bookStore BookStore, listingStore ListingStore) *CoversController {
	return &CoversController{cache: cache, books: bookStore, listings: listingStore}
}

// BookCover serves the catalog cover of a book.
// GET /api/books/:id/cover
func (cc *CoversController) BookCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := cc.books.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "book")
		return
	}
	cc.serve(c, book.Cover)
}

// ListingCover serves the effective cover of one of the user's listings,
// honouring the override.
// GET /api/my/books/:id/cover
func (cc *CoversController) ListingCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	listing, err := cc.listings.GetForUser(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		respondServiceError(c, err, "listing")
		return
	}
	cc.serve(c, listing.DisplayCover())
}

func (cc *CoversController) serve(c *gin.Context, coverURL string) {
	path, err := cc.cache.Get(c.Request.Context(), coverURL)
	switch {
	case errors.Is(err, covers.ErrNoCover):
		respondNotFound(c, "cover")
	case err != nil:
		// Fall back to the origin so clients still get an image.
		log.Warn().Err(err).Str("url", coverURL).Msg("Cover cache miss")
		c.Redirect(http.StatusTemporaryRedirect, coverURL)
	default:
		c.Header("Cache-Control", "public, max-age=86400")
		c.File(path)
	}
}
