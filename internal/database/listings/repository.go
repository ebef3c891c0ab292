// Package listings provides database operations for users' personal book
// lists: adding and removing books, ratings and per-entry display overrides.
//
// Every read or write that takes a userID is scoped to that user. A listing
// owned by someone else behaves exactly like a missing one and yields
// database.ErrNotFound.
package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/entities"
)

var ErrInvalidRating = fmt.Errorf("rating must be between %d and %d", entities.MinRating, entities.MaxRating)

// Edit holds the user-editable fields of a listing. Empty strings and nil
// pointers clear the corresponding value.
type Edit struct {
	Rating         *int
	OverrideTitle  string
	OverrideAuthor string
	OverrideYear   *int
	OverrideCover  string
}

// Repository handles all listing database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new listings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a listing. Listing the same book twice for one user fails
// with database.ErrConstraintViolation.
func (r *Repository) Create(ctx context.Context, listing *entities.Listing) error {
	if listing.Rating != nil && !entities.ValidRating(*listing.Rating) {
		return ErrInvalidRating
	}
	if err := r.db.WithContext(ctx).Omit("User", "Book").Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", database.TranslateError(err))
	}
	return nil
}

// FindOrCreate attaches a book to the user's list unless it is already there.
func (r *Repository) FindOrCreate(ctx context.Context, userID, bookID uint) (*entities.Listing, bool, error) {
	var listing entities.Listing
	err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&listing).Error
	if err == nil {
		return &listing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up listing: %w", database.TranslateError(err))
	}

	listing = entities.Listing{UserID: userID, BookID: bookID}
	if err := r.Create(ctx, &listing); err != nil {
		return nil, false, err
	}
	return &listing, true, nil
}

// GetForUser retrieves one of the user's listings with its book, the book's
// author and the owning user loaded.
func (r *Repository) GetForUser(ctx context.Context, id, userID uint) (*entities.Listing, error) {
	var listing entities.Listing
	err := r.db.WithContext(ctx).Preload("User").Preload("Book.Author").
		Where("id = ? AND user_id = ?", id, userID).
		First(&listing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", id, database.TranslateError(err))
	}
	return &listing, nil
}

// ListForUser returns the user's list in the order the books were added.
func (r *Repository) ListForUser(ctx context.Context, userID uint) ([]entities.Listing, error) {
	listings := []entities.Listing{}
	err := r.db.WithContext(ctx).Preload("User").Preload("Book.Author").
		Where("user_id = ?", userID).
		Order("added ASC, id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// Rate sets the rating of one of the user's listings.
func (r *Repository) Rate(ctx context.Context, id, userID uint, rating int) (*entities.Listing, error) {
	if !entities.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	if err := r.update(ctx, id, userID, map[string]any{"rating": rating}); err != nil {
		return nil, err
	}
	return r.GetForUser(ctx, id, userID)
}

// Update replaces the rating and display overrides of one of the user's
// listings.
func (r *Repository) Update(ctx context.Context, id, userID uint, edit Edit) (*entities.Listing, error) {
	if edit.Rating != nil && !entities.ValidRating(*edit.Rating) {
		return nil, ErrInvalidRating
	}
	fields := map[string]any{
		"rating":          edit.Rating,
		"override_title":  edit.OverrideTitle,
		"override_author": edit.OverrideAuthor,
		"override_year":   edit.OverrideYear,
		"override_cover":  edit.OverrideCover,
	}
	if err := r.update(ctx, id, userID, fields); err != nil {
		return nil, err
	}
	return r.GetForUser(ctx, id, userID)
}

func (r *Repository) update(ctx context.Context, id, userID uint, fields map[string]any) error {
	fields["updated"] = time.Now()
	result := r.db.WithContext(ctx).Model(&entities.Listing{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update listing %d: %w", id, database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("listing %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// Delete removes one of the user's listings.
func (r *Repository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.Listing{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing %d: %w", id, database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("listing %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// CountForBook returns how many users list the book.
func (r *Repository) CountForBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Listing{}).Where("book_id = ?", bookID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count listings for book %d: %w", bookID, err)
	}
	return count, nil
}

// AverageRatingForBook returns the mean rating of the book's rated listings,
// or nil when no listing carries a rating.
func (r *Repository) AverageRatingForBook(ctx context.Context, bookID uint) (*float64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).Model(&entities.Listing{}).
		Select("AVG(CAST(rating AS REAL))").
		Where("book_id = ?", bookID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to average ratings for book %d: %w", bookID, err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
