package http

import (
	"context"

	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/database/books"
	"github.com/mrlokans/bookr/internal/database/listings"
	"github.com/mrlokans/bookr/internal/database/rankings"
	"github.com/mrlokans/bookr/internal/entities"
)

// Each controller declares the store methods it uses; the repositories under
// internal/database satisfy them.

// AuthorStore backs the admin author endpoints.
type AuthorStore interface {
	Create(ctx context.Context, author *entities.Author) error
	GetByID(ctx context.Context, id uint) (*entities.Author, error)
	List(ctx context.Context) ([]entities.Author, error)
	Delete(ctx context.Context, id uint) error
}

// BookStore backs the catalog and admin book endpoints.
type BookStore interface {
	Create(ctx context.Context, book *entities.Book) error
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	List(ctx context.Context, filter books.Filter) ([]entities.Book, error)
	ListNotListedBy(ctx context.Context, userID uint) ([]entities.Book, error)
	Delete(ctx context.Context, id uint) error
}

// BookStatsStore computes per-book listing aggregates.
type BookStatsStore interface {
	CountForBook(ctx context.Context, bookID uint) (int64, error)
	AverageRatingForBook(ctx context.Context, bookID uint) (*float64, error)
}

// ListingStore backs the personal list endpoints.
type ListingStore interface {
	BookStatsStore
	Create(ctx context.Context, listing *entities.Listing) error
	GetForUser(ctx context.Context, id, userID uint) (*entities.Listing, error)
	ListForUser(ctx context.Context, userID uint) ([]entities.Listing, error)
	Rate(ctx context.Context, id, userID uint, rating int) (*entities.Listing, error)
	Update(ctx context.Context, id, userID uint, edit listings.Edit) (*entities.Listing, error)
	Delete(ctx context.Context, id, userID uint) error
}

// RankingStore backs the dashboard.
type RankingStore interface {
	MostRead(ctx context.Context, limit int) ([]rankings.RankedBook, error)
	MostRecent(ctx context.Context, limit int) ([]rankings.RankedBook, error)
	TopRated(ctx context.Context, limit int) ([]rankings.RankedBook, error)
}

// Ingester puts an external catalog entry on a user's list.
type Ingester interface {
	Ingest(ctx context.Context, externalID string, userID uint, lookup catalog.DetailLookup) (*entities.Book, bool, error)
}

// CoverStore resolves cover URLs to cached files.
type CoverStore interface {
	Get(ctx context.Context, coverURL string) (string, error)
}
