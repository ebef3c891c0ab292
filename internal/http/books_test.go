package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/forms"
)

func TestBooks_List(t *testing.T) {
	s := newTestServer(t)
	catcher := s.seedBook(t, "J. D.", "Salinger", "The Catcher in the Rye", 1951)
	s.seedBook(t, "J. D.", "Salinger", "Nine Stories", 1953)
	s.seedBook(t, "Vincent van", "Gogh", "Letters", 1914)

	all := decode[ListResponse[entities.Book]](t, s.do(http.MethodGet, "/api/books", ""))
	assert.Equal(t, 3, all.Count)

	byAuthor := decode[ListResponse[entities.Book]](t,
		s.do(http.MethodGet, fmt.Sprintf("/api/books?author_id=%d", catcher.AuthorID), ""))
	assert.Equal(t, 2, byAuthor.Count)

	byTitle := decode[ListResponse[entities.Book]](t, s.do(http.MethodGet, "/api/books?q=catcher", ""))
	require.Equal(t, 1, byTitle.Count)
	assert.Equal(t, catcher.ID, byTitle.Items[0].ID)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/books?author_id=x", "").Code)
}

func TestBooks_Get(t *testing.T) {
	s := newTestServer(t)
	book := s.seedBook(t, "J. D.", "Salinger", "The Catcher in the Rye", 1951)
	four := 4
	require.NoError(t, s.listings.Create(context.Background(), &entities.Listing{UserID: s.user.ID, BookID: book.ID, Rating: &four}))

	w := s.do(http.MethodGet, fmt.Sprintf("/api/books/%d", book.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail := decode[BookDetail](t, w)
	assert.Equal(t, "J. D. Salinger: The Catcher in the Rye", detail.Display)
	assert.EqualValues(t, 1, detail.Stats.ListingCount)
	require.NotNil(t, detail.Stats.AverageRating)
	assert.InDelta(t, 4.0, *detail.Stats.AverageRating, 0.001)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/books/999", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/books/0", "").Code)
}

func TestForms(t *testing.T) {
	s := newTestServer(t)
	listed := s.seedBook(t, "J. D.", "Salinger", "The Catcher in the Rye", 1951)
	open := s.seedBook(t, "J. D.", "Salinger", "Nine Stories", 1953)
	require.NoError(t, s.listings.Create(context.Background(), &entities.Listing{UserID: s.user.ID, BookID: listed.ID}))

	names := decode[ListResponse[string]](t, s.do(http.MethodGet, "/api/forms", ""))
	assert.Equal(t, []string{"author", "book", "listing-add", "listing-edit"}, names.Items)

	w := s.do(http.MethodGet, "/api/forms/listing-add", "")
	require.Equal(t, http.StatusOK, w.Code)
	form := decode[forms.Form](t, w)
	require.Len(t, form.Fields, 1)
	assert.Equal(t, [][2]string{{fmt.Sprint(open.ID), "J. D. Salinger: Nine Stories"}}, form.Fields[0].Choices)

	edit := decode[forms.Form](t, s.do(http.MethodGet, "/api/forms/listing-edit", ""))
	assert.Equal(t, []string{"rating", "override_title", "override_author", "override_year", "override_cover"}, edit.FieldNames())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/forms/user", "").Code)
}
