// Package rankings computes the dashboard book rankings.
//
// All queries are read-only and aggregate over the books and listings tables
// on every call. Each ranking runs in two steps: an aggregate query picks
// the ordered book IDs, then the books are loaded with their authors and put
// back in ranked order.
package rankings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/metrics"
)

// DefaultLimit is the number of books each ranking returns when the caller
// passes a non-positive limit.
const DefaultLimit = 5

// RankedBook is a book together with the aggregates it was ranked by.
type RankedBook struct {
	Book          entities.Book `json:"book"`
	ListingCount  int64         `json:"listing_count"`
	AverageRating *float64      `json:"average_rating"`
}

// Repository runs ranking queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new rankings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const (
	listingCount  = "COUNT(listings.id)"
	averageRating = "AVG(CAST(listings.rating AS REAL))"
)

// MostRead orders books by how many users list them. Equal counts rank the
// book added earlier first. Unlisted books take part with a count of zero.
func (r *Repository) MostRead(ctx context.Context, limit int) ([]RankedBook, error) {
	return r.rank(ctx, "most read", limit,
		listingCount+" DESC",
		"books.added ASC",
		"books.id ASC",
	)
}

// MostRecent returns the newest books first. Books added at the same
// instant keep insertion order.
func (r *Repository) MostRecent(ctx context.Context, limit int) ([]RankedBook, error) {
	return r.rank(ctx, "most recent", limit,
		"books.added DESC",
		"books.id ASC",
	)
}

// TopRated orders books by their average rating, ignoring unrated listings.
// Ties go to the book with more listings, then to the one added earlier.
// Books without any rating sort after every rated book.
func (r *Repository) TopRated(ctx context.Context, limit int) ([]RankedBook, error) {
	return r.rank(ctx, "top rated", limit,
		averageRating+" IS NULL",
		averageRating+" DESC",
		listingCount+" DESC",
		"books.added ASC",
		"books.id ASC",
	)
}

type rankRow struct {
	BookID        uint
	ListingCount  int64
	AverageRating sql.NullFloat64
}

func (r *Repository) rank(ctx context.Context, name string, limit int, orderBy ...string) ([]RankedBook, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	start := time.Now()
	defer func() { metrics.RecordRankingQuery(name, time.Since(start)) }()

	query := r.db.WithContext(ctx).
		Table("books").
		Select("books.id AS book_id, " + listingCount + " AS listing_count, " + averageRating + " AS average_rating").
		Joins("LEFT JOIN listings ON listings.book_id = books.id").
		Group("books.id, books.added")
	for _, clause := range orderBy {
		query = query.Order(clause)
	}

	var rows []rankRow
	if err := query.Limit(limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank %s books: %w", name, err)
	}

	ranked := make([]RankedBook, 0, len(rows))
	if len(rows) == 0 {
		return ranked, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.BookID
	}
	var books []entities.Book
	if err := r.db.WithContext(ctx).Preload("Author").Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s books: %w", name, err)
	}
	byID := make(map[uint]entities.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	for _, row := range rows {
		book, ok := byID[row.BookID]
		if !ok {
			// Deleted between the two queries.
			continue
		}
		rb := RankedBook{Book: book, ListingCount: row.ListingCount}
		if row.AverageRating.Valid {
			avg := row.AverageRating.Float64
			rb.AverageRating = &avg
		}
		ranked = append(ranked, rb)
	}
	return ranked, nil
}
