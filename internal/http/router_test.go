package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/auth"
	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/database/authors"
	"github.com/mrlokans/bookr/internal/database/books"
	"github.com/mrlokans/bookr/internal/database/listings"
	"github.com/mrlokans/bookr/internal/database/rankings"
	"github.com/mrlokans/bookr/internal/database/users"
	"github.com/mrlokans/bookr/internal/demo"
	"github.com/mrlokans/bookr/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCatalog serves canned search and detail records.
type fakeCatalog struct {
	records   []catalog.SearchRecord
	details   map[string]*catalog.DetailRecord
	searchErr error
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]catalog.SearchRecord, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.records, nil
}

func (f *fakeCatalog) Lookup(ctx context.Context, externalID string) (*catalog.DetailRecord, error) {
	d, ok := f.details[externalID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return d, nil
}

type testServer struct {
	router   *gin.Engine
	db       *database.Database
	authors  *authors.Repository
	books    *books.Repository
	listings *listings.Repository
	catalog  *fakeCatalog
	user     *entities.User
}

// newTestServer builds the full router in single-user mode, so every request
// acts as the local admin.
func newTestServer(t *testing.T, opts ...func(*RouterConfig)) *testServer {
	t.Helper()
	db, err := database.Open(database.Options{
		Path:     filepath.Join(t.TempDir(), "http.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authCfg := config.Auth{Mode: config.AuthModeNone}
	userRepo := users.NewRepository(db.DB)
	authService := auth.NewService(userRepo, authCfg)
	local, err := authService.LocalUser(context.Background())
	require.NoError(t, err)

	s := &testServer{
		db:       db,
		authors:  authors.NewRepository(db.DB),
		books:    books.NewRepository(db.DB),
		listings: listings.NewRepository(db.DB),
		catalog:  &fakeCatalog{details: map[string]*catalog.DetailRecord{}},
		user:     local,
	}

	cfg := RouterConfig{
		Authors:        s.authors,
		Books:          s.books,
		Listings:       s.listings,
		Rankings:       rankings.NewRepository(db.DB),
		Database:       db,
		Searcher:       s.catalog,
		Lookup:         s.catalog,
		Ingester:       catalog.NewReconciler(s.authors, s.books, s.listings),
		AuthConfig:     authCfg,
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService, nil, authCfg),
		Version:        "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.router = NewRouter(cfg)
	return s
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedBook(t *testing.T, first, last, title string, year int) *entities.Book {
	t.Helper()
	ctx := context.Background()
	author, _, err := s.authors.FindOrCreate(ctx, first, last)
	require.NoError(t, err)
	book, _, err := s.books.FindOrCreate(ctx, author.ID, title, year)
	require.NoError(t, err)
	return book
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.MetricsEnabled = true })

	w := s.do(http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookr_api_requests_total")

	w = s.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_Me(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"local"`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
	assert.Contains(t, w.Body.String(), `"auth_mode":"none"`)
}

func TestRouter_SearchDisabledWithoutCatalog(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.Searcher = nil })

	w := s.do(http.MethodGet, "/api/my/books/search?q=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "falls through to the :id route")
}

func TestRouter_DemoModeBlocksWrites(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.DemoMiddleware = demo.NewMiddleware(true) })
	book := s.seedBook(t, "J. D.", "Salinger", "Nine Stories", 1953)

	w := s.do(http.MethodPost, "/api/my/books", `{"book_id":1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"demo_mode":true`)

	w = s.do(http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := s.books.GetByID(context.Background(), book.ID)
	assert.NoError(t, err)
	assert.Zero(t, decode[ListResponse[ListingView]](t, s.do(http.MethodGet, "/api/my/books", "")).Count)
}
