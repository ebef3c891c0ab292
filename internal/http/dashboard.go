package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookr/internal/database/rankings"
)

// maxDashboardLimit bounds the ?limit= override.
const maxDashboardLimit = 50

// DashboardResponse holds the three book rankings.
type DashboardResponse struct {
	MostRead []rankings.RankedBook `json:"most_read"`
	Recent   []rankings.RankedBook `json:"recent"`
	TopRated []rankings.RankedBook `json:"top_rated"`
}

type DashboardController struct {
	rankings RankingStore
	limit    int
}

func NewDashboardController(store RankingStore, limit int) *DashboardController {
	if limit <= 0 {
		limit = rankings.DefaultLimit
	}
	return &DashboardController{rankings: store, limit: limit}
}

// Get returns the most read, most recently added and top rated books.
// GET /api/dashboard
func (dc *DashboardController) Get(c *gin.Context) {
	limit := dc.limit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxDashboardLimit {
			respondBadRequest(c, CodeInvalidParamFmt, "limit must be between 1 and "+strconv.Itoa(maxDashboardLimit))
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	mostRead, err := dc.rankings.MostRead(ctx, limit)
	if err != nil {
		respondInternalError(c, err, "most read ranking")
		return
	}
	recent, err := dc.rankings.MostRecent(ctx, limit)
	if err != nil {
		respondInternalError(c, err, "most recent ranking")
		return
	}
	topRated, err := dc.rankings.TopRated(ctx, limit)
	if err != nil {
		respondInternalError(c, err, "top rated ranking")
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		MostRead: mostRead,
		Recent:   recent,
		TopRated: topRated,
	})
}
