package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/covers"
	"github.com/mrlokans/bookr/internal/entities"
)

func TestCovers(t *testing.T) {
	var hits atomic.Int32
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/book.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("book-cover"))
		case "/mine.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("my-cover"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer origin.Close()

	cache, err := covers.NewCache(t.TempDir(), "bookr-test")
	require.NoError(t, err)
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.CoverCache = cache })
	ctx := context.Background()

	book := s.seedBook(t, "J. D.", "Salinger", "The Catcher in the Rye", 1951)
	require.NoError(t, s.books.SetCover(ctx, book.ID, origin.URL+"/book.jpg"))
	bare := s.seedBook(t, "J. D.", "Salinger", "Nine Stories", 1953)
	broken := s.seedBook(t, "J. D.", "Salinger", "Franny and Zooey", 1961)
	require.NoError(t, s.books.SetCover(ctx, broken.ID, origin.URL+"/gone.jpg"))

	bookPath := fmt.Sprintf("/api/books/%d/cover", book.ID)
	w := s.do(http.MethodGet, bookPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "book-cover", w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age")

	s.do(http.MethodGet, bookPath, "")
	assert.EqualValues(t, 1, hits.Load(), "second request is served from disk")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/api/books/%d/cover", bare.ID), "").Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/books/%d/cover", broken.ID), "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, origin.URL+"/gone.jpg", w.Header().Get("Location"))

	listing := &entities.Listing{UserID: s.user.ID, BookID: book.ID, OverrideCover: origin.URL + "/mine.jpg"}
	require.NoError(t, s.listings.Create(ctx, listing))
	w = s.do(http.MethodGet, fmt.Sprintf("/api/my/books/%d/cover", listing.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "my-cover", w.Body.String())
}
