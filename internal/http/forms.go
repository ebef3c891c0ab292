package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookr/internal/forms"
)

// FormsController exposes the editable-field configuration of each entity
// so clients can render edit forms.
type FormsController struct {
	books BookStore
}

func NewFormsController(bookStore BookStore) *FormsController {
	return &FormsController{books: bookStore}
}

// List returns the names of all entities with a form.
// GET /api/forms
func (fc *FormsController) List(c *gin.Context) {
	c.JSON(http.StatusOK, newList(forms.Entities()))
}

// Get returns one form. The listing-add form offers the books the user has
// not listed yet.
// GET /api/forms/:entity
func (fc *FormsController) Get(c *gin.Context) {
	entity := c.Param("entity")
	form, ok := forms.Lookup(entity)
	if !ok {
		respondNotFound(c, "form")
		return
	}

	if entity == forms.ListingAdd.Entity {
		available, err := fc.books.ListNotListedBy(c.Request.Context(), GetUserID(c))
		if err != nil {
			respondInternalError(c, err, "listing form choices")
			return
		}
		form = forms.WithBookChoices(available)
	}

	c.JSON(http.StatusOK, form)
}
