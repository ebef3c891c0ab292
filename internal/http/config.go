package http

import (
	"github.com/mrlokans/bookr/internal/auth"
	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/demo"
)

// RouterConfig contains all dependencies needed to build the HTTP router.
type RouterConfig struct {
	// Stores
	Authors  AuthorStore
	Books    BookStore
	Listings ListingStore
	Rankings RankingStore

	// Health check target; nil reports the database as not configured.
	Database Pinger

	// External catalog
	Searcher catalog.Searcher
	Lookup   catalog.DetailLookup
	Ingester Ingester

	// Cover caching (optional)
	CoverCache CoverStore

	// Authentication
	AuthConfig     config.Auth
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter
	CSRFSecret     []byte

	// Read-only showcase mode (optional)
	DemoMiddleware *demo.Middleware

	DashboardLimit int
	MetricsEnabled bool
	Version        string
}
