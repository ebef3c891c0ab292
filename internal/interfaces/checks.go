package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookr/internal/auth"
	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/covers"
	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/database/authors"
	"github.com/mrlokans/bookr/internal/database/books"
	"github.com/mrlokans/bookr/internal/database/listings"
	"github.com/mrlokans/bookr/internal/database/rankings"
	"github.com/mrlokans/bookr/internal/database/users"
	"github.com/mrlokans/bookr/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.BookStatsStore = (*listings.Repository)(nil)
var _ http.ListingStore = (*listings.Repository)(nil)
var _ http.RankingStore = (*rankings.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

var _ auth.UserStore = (*users.Repository)(nil)

// =============================================================================
// Catalog Reconciler
// =============================================================================

var _ catalog.AuthorStore = (*authors.Repository)(nil)
var _ catalog.BookStore = (*books.Repository)(nil)
var _ catalog.ListingStore = (*listings.Repository)(nil)

var _ http.Ingester = (*catalog.Reconciler)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ catalog.Searcher = (*catalog.OpenLibraryClient)(nil)
var _ catalog.DetailLookup = (*catalog.OpenLibraryClient)(nil)
var _ catalog.DetailLookup = catalog.DetailLookupFunc(nil)

var _ http.CoverStore = (*covers.Cache)(nil)
