package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/forms"
	"github.com/mrlokans/bookr/internal/metrics"
)

// IngestResponse reports the outcome of adding an external catalog entry.
type IngestResponse struct {
	Book    entities.Book `json:"book"`
	Created bool          `json:"created"`
}

// SearchController searches the external catalog and adds chosen results
// to the user's list.
type SearchController struct {
	searcher catalog.Searcher
	lookup   catalog.DetailLookup
	ingester Ingester
}

func NewSearchController(searcher catalog.Searcher, lookup catalog.DetailLookup, ingester Ingester) *SearchController {
	return &SearchController{searcher: searcher, lookup: lookup, ingester: ingester}
}

// Search returns the complete external results as (external_id, label)
// choices.
// GET /api/my/books/search?q=
func (sc *SearchController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, CodeMissingParam, "q is required")
		return
	}

	records, err := sc.searcher.Search(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "search results")
		return
	}

	choices := catalog.FilterSearchResults(records)
	metrics.RecordSearchChoices(len(choices))
	c.JSON(http.StatusOK, newList(choices))
}

// Ingest adds the chosen external entry to the catalog, if needed, and to
// the user's list. It answers 201 when the book was new to the catalog.
// POST /api/my/books/search
func (sc *SearchController) Ingest(c *gin.Context) {
	var in forms.IngestInput
	if !bindJSON(c, &in) {
		return
	}

	book, created, err := sc.ingester.Ingest(c.Request.Context(), in.ExternalID, GetUserID(c), sc.lookup)
	if err != nil {
		respondServiceError(c, err, "catalog entry")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, IngestResponse{Book: *book, Created: created})
}
