package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/auth"
	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/database/listings"
	"github.com/mrlokans/bookr/internal/forms"
)

// GetUserID extracts the acting user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ListResponse wraps a collection with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// Machine-readable error codes.
const (
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInvalidInput    = "invalid_input"
	CodeValidation      = "validation_failed"
	CodeParse           = "unparseable_catalog_entry"
	CodeUpstream        = "catalog_unavailable"
	CodeInternal        = "internal"
	CodeMissingParam    = "missing_parameter"
	CodeInvalidParamFmt = "invalid_parameter"
)

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: code})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs err and answers 500 without exposing it.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Error().Err(err).Str("context", context).Str("request_id", c.GetString("request_id")).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal})
}

// respondServiceError maps a store, catalog or validation error to its HTTP
// status. resource names the thing that was looked up, for 404 messages.
func respondServiceError(c *gin.Context, err error, resource string) {
	var verr *forms.ValidationError
	var perr *catalog.ParseError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Code: CodeValidation, Details: verr.Fields})
	case errors.Is(err, database.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		respondNotFound(c, resource)
	case errors.Is(err, database.ErrConstraintViolation):
		c.JSON(http.StatusConflict, ErrorResponse{Error: resource + " already exists", Code: CodeConflict})
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: perr.Error(), Code: CodeParse})
	case errors.Is(err, listings.ErrInvalidRating):
		respondBadRequest(c, CodeInvalidInput, err.Error())
	case errors.Is(err, catalog.ErrUnavailable):
		log.Warn().Err(err).Msg("Catalog unavailable")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "external catalog unavailable", Code: CodeUpstream})
	default:
		respondInternalError(c, err, resource)
	}
}

// --- Request Parsing ---

// parseIDParam extracts an unsigned integer ID from URL parameters.
// On failure it responds with 400 and returns false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, CodeInvalidParamFmt, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID reads an optional unsigned integer query parameter.
// An absent parameter yields 0.
func parseOptionalQueryID(c *gin.Context, paramName string) (uint, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondBadRequest(c, CodeInvalidParamFmt, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into dst and runs form validation. On failure it
// responds and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, CodeInvalidInput, "invalid request body")
		return false
	}
	if err := forms.Validate(dst); err != nil {
		respondServiceError(c, err, "input")
		return false
	}
	return true
}
