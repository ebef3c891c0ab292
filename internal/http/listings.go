package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/forms"
)

// ListingView is a listing as its owner sees it: stored fields plus the
// effective display values after overrides.
type ListingView struct {
	entities.Listing
	DisplayTitle  string `json:"display_title"`
	DisplayAuthor string `json:"display_author"`
	DisplayYear   int    `json:"display_year"`
	DisplayCover  string `json:"display_cover,omitempty"`
}

func newListingView(l entities.Listing) ListingView {
	return ListingView{
		Listing:       l,
		DisplayTitle:  l.DisplayTitle(),
		DisplayAuthor: l.DisplayAuthor(),
		DisplayYear:   l.DisplayYear(),
		DisplayCover:  l.DisplayCover(),
	}
}

// MyBooksController serves the acting user's personal list.
type MyBooksController struct {
	listings ListingStore
	books    BookStore
}

func NewMyBooksController(listingStore ListingStore, bookStore BookStore) *MyBooksController {
	return &MyBooksController{listings: listingStore, books: bookStore}
}

// List returns the user's listings in the order they were added.
// GET /api/my/books
func (mc *MyBooksController) List(c *gin.Context) {
	result, err := mc.listings.ListForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list listings")
		return
	}

	views := make([]ListingView, len(result))
	for i, l := range result {
		views[i] = newListingView(l)
	}
	c.JSON(http.StatusOK, newList(views))
}

// Available returns catalog books the user has not listed yet.
// GET /api/my/books/available
func (mc *MyBooksController) Available(c *gin.Context) {
	result, err := mc.books.ListNotListedBy(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list available books")
		return
	}
	c.JSON(http.StatusOK, newList(result))
}

// Add puts an existing catalog book on the user's list.
// POST /api/my/books
func (mc *MyBooksController) Add(c *gin.Context) {
	var in forms.ListingAddInput
	if !bindJSON(c, &in) {
		return
	}

	ctx := c.Request.Context()
	userID := GetUserID(c)
	if _, err := mc.books.GetByID(ctx, in.BookID); err != nil {
		respondServiceError(c, err, "book")
		return
	}

	listing := &entities.Listing{UserID: userID, BookID: in.BookID}
	if err := mc.listings.Create(ctx, listing); err != nil {
		respondServiceError(c, err, "listing")
		return
	}

	mc.respondListing(c, http.StatusCreated, listing.ID)
}

// Get returns one of the user's listings.
// GET /api/my/books/:id
func (mc *MyBooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	mc.respondListing(c, http.StatusOK, id)
}

// Update edits the rating and display overrides of a listing.
// PATCH /api/my/books/:id
func (mc *MyBooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in forms.ListingEditInput
	if !bindJSON(c, &in) {
		return
	}

	listing, err := mc.listings.Update(c.Request.Context(), id, GetUserID(c), in.Edit())
	if err != nil {
		respondServiceError(c, err, "listing")
		return
	}
	c.JSON(http.StatusOK, newListingView(*listing))
}

// Delete removes a listing from the user's list.
// DELETE /api/my/books/:id
func (mc *MyBooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := mc.listings.Delete(c.Request.Context(), id, GetUserID(c)); err != nil {
		respondServiceError(c, err, "listing")
		return
	}
	c.Status(http.StatusNoContent)
}

// Rate sets the rating of one of the user's listings.
// POST /api/my/books/rate
func (mc *MyBooksController) Rate(c *gin.Context) {
	var in forms.RateInput
	if !bindJSON(c, &in) {
		return
	}

	listing, err := mc.listings.Rate(c.Request.Context(), in.ListingID, GetUserID(c), in.Rating)
	if err != nil {
		respondServiceError(c, err, "listing")
		return
	}

	log.Debug().Uint("listing_id", listing.ID).Int("rating", in.Rating).Msg("Listing rated")
	c.JSON(http.StatusOK, newListingView(*listing))
}

func (mc *MyBooksController) respondListing(c *gin.Context, status int, id uint) {
	listing, err := mc.listings.GetForUser(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		respondServiceError(c, err, "listing")
		return
	}
	c.JSON(status, newListingView(*listing))
}
