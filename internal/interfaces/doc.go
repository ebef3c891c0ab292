// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interfaces they need next to the code that
// uses them; the repositories and clients satisfy them implicitly.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore, BookStore, ListingStore, BookStatsStore, RankingStore:
//     controller dependencies (internal/http/stores.go)
//   - AuthorStore, BookStore, ListingStore: find-or-create stores used by the
//     reconciler (internal/catalog/reconciler.go)
//   - UserStore: account persistence (internal/auth/service.go)
//   - Pinger: database health check (internal/http/health.go)
//
// ## External Service Interfaces
//
//   - Searcher: free-text catalog search (internal/catalog/reconciler.go)
//   - DetailLookup: single edition lookup, passed to Reconciler.Ingest
//   - CoverStore: cached cover images (internal/http/stores.go)
//
// # Adding a New Catalog Source
//
// To ingest books from another catalog (e.g., Google Books):
//
//  1. Implement Searcher and DetailLookup in internal/catalog/
//
//     type GoogleBooksClient struct {
//         apiKey     string
//         httpClient *http.Client
//     }
//
//     func (c *GoogleBooksClient) Search(ctx context.Context, query string) ([]SearchRecord, error)
//     func (c *GoogleBooksClient) Lookup(ctx context.Context, externalID string) (*DetailRecord, error)
//
//  2. Add compile-time checks to checks.go
//
//  3. Pass it to the router in entrypoint.go
//
// A one-off lookup can also be adapted with catalog.DetailLookupFunc.
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading goals):
//
//  1. Create sub-package: internal/database/goals/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface in the consuming package
//
//  4. Add compile-time check:
//
//     var _ http.GoalStore = (*goals.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
