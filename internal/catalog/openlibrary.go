package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mrlokans/bookr/internal/metrics"
)

const (
	DefaultBaseURL     = "https://openlibrary.org"
	DefaultUserAgent   = "bookr/1.0 (https://github.com/mrlokans/bookr)"
	DefaultSearchLimit = 10

	searchFields = "cover_edition_key,edition_key,author_name,title,first_publish_year"
)

// ErrUnavailable wraps every failure to talk to the catalog: transport
// errors, unexpected status codes, undecodable bodies and requests refused
// while the circuit breaker is open.
var ErrUnavailable = errors.New("catalog unavailable")

// OpenLibraryConfig configures OpenLibraryClient. Zero values fall back to
// the package defaults.
type OpenLibraryConfig struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
	SearchLimit       int
	Timeout           time.Duration
	BreakerFailures   uint32        // consecutive failures that open the breaker
	BreakerCooldown   time.Duration // time the breaker stays open
}

// OpenLibraryClient searches OpenLibrary and fetches edition details. It
// implements Searcher and DetailLookup.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	searchLimit int
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[*http.Response]
}

// NewOpenLibraryClient creates a rate limited OpenLibrary client guarded by
// a circuit breaker.
func NewOpenLibraryClient(cfg OpenLibraryConfig) *OpenLibraryClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "openlibrary",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Catalog circuit breaker changed state")
			metrics.SetCatalogCircuitState(int(to))
		},
	})

	return &OpenLibraryClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		searchLimit: cfg.SearchLimit,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		breaker:     breaker,
	}
}

type searchResponse struct {
	NumFound int            `json:"numFound"`
	Docs     []SearchRecord `json:"docs"`
}

// Search runs a free-text query against /search.json and returns the raw
// documents.
func (c *OpenLibraryClient) Search(ctx context.Context, query string) ([]SearchRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Set("fields", searchFields)

	var result searchResponse
	if err := c.getJSON(ctx, "search", "/search.json?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if result.Docs == nil {
		result.Docs = []SearchRecord{}
	}
	return result.Docs, nil
}

// Lookup fetches an edition through the books API
// (/api/books?bibkeys=OLID:<id>&jscmd=data&format=json).
func (c *OpenLibraryClient) Lookup(ctx context.Context, externalID string) (*DetailRecord, error) {
	bibkey := "OLID:" + externalID
	params := url.Values{}
	params.Set("bibkeys", bibkey)
	params.Set("jscmd", "data")
	params.Set("format", "json")

	var result map[string]DetailRecord
	if err := c.getJSON(ctx, "detail", "/api/books?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", externalID, err)
	}
	record, ok := result[bibkey]
	if !ok {
		return nil, fmt.Errorf("%s: %w", externalID, ErrNotFound)
	}
	return &record, nil
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, endpoint, path string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCatalogRejected(endpoint)
		} else {
			metrics.RecordCatalogRequest(endpoint, 0, time.Since(start))
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.RecordCatalogRequest(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status: %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return nil
}
