package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/metrics"
)

// ErrNotFound is returned by a DetailLookup that has no record for the
// requested external ID.
var ErrNotFound = errors.New("catalog entry not found")

// Searcher runs a free-text search against an external catalog.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchRecord, error)
}

// DetailLookup fetches the detail record of one external edition.
type DetailLookup interface {
	Lookup(ctx context.Context, externalID string) (*DetailRecord, error)
}

// DetailLookupFunc adapts a function to DetailLookup.
type DetailLookupFunc func(ctx context.Context, externalID string) (*DetailRecord, error)

func (f DetailLookupFunc) Lookup(ctx context.Context, externalID string) (*DetailRecord, error) {
	return f(ctx, externalID)
}

type AuthorStore interface {
	FindOrCreate(ctx context.Context, firstName, lastName string) (*entities.Author, bool, error)
}

type BookStore interface {
	FindOrCreate(ctx context.Context, authorID uint, title string, firstPublished int) (*entities.Book, bool, error)
	SetCover(ctx context.Context, id uint, cover string) error
}

type ListingStore interface {
	FindOrCreate(ctx context.Context, userID, bookID uint) (*entities.Listing, bool, error)
}

// Reconciler materializes external catalog entries as local authors and
// books and puts them on a user's list.
type Reconciler struct {
	authors  AuthorStore
	books    BookStore
	listings ListingStore
}

func NewReconciler(authors AuthorStore, books BookStore, listings ListingStore) *Reconciler {
	return &Reconciler{authors: authors, books: books, listings: listings}
}

// Ingest looks up externalID, finds or creates the matching author and
// book, and attaches the book to the user's list. created reports whether
// the book was new to the catalog. Repeating an ingest for the same user is
// a no-op.
//
// Store errors, including database.ErrConstraintViolation from a lost
// find-or-create race, are returned as is.
func (r *Reconciler) Ingest(ctx context.Context, externalID string, userID uint, lookup DetailLookup) (book *entities.Book, created bool, err error) {
	defer func() { metrics.RecordIngest(created, err) }()

	record, err := lookup.Lookup(ctx, externalID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s: %w", externalID, err)
	}

	if len(record.Authors) == 0 {
		return nil, false, &ParseError{Field: "authors", Value: externalID, Err: errors.New("no author listed")}
	}
	if strings.TrimSpace(record.Title) == "" {
		return nil, false, &ParseError{Field: "title", Value: externalID, Err: errors.New("empty title")}
	}
	firstName, lastName, err := ParseAuthorName(record.Authors[0].Name)
	if err != nil {
		return nil, false, err
	}
	year, err := ParsePublishYear(record.PublishDate)
	if err != nil {
		return nil, false, err
	}

	author, _, err := r.authors.FindOrCreate(ctx, firstName, lastName)
	if err != nil {
		return nil, false, err
	}

	book, created, err = r.books.FindOrCreate(ctx, author.ID, record.Title, year)
	if err != nil {
		return nil, false, err
	}
	if created {
		if cover := record.MediumCover(); cover != "" {
			if err := r.books.SetCover(ctx, book.ID, cover); err != nil {
				return nil, false, err
			}
			book.Cover = cover
		}
	}

	if _, _, err := r.listings.FindOrCreate(ctx, userID, book.ID); err != nil {
		return nil, false, err
	}

	log.Info().
		Str("external_id", externalID).
		Uint("book_id", book.ID).
		Uint("user_id", userID).
		Bool("created", created).
		Msg("Ingested catalog entry")

	return book, created, nil
}
