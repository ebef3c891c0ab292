// Package books provides database operations for the shared book catalog.
//
// Books are owned by an author and are unique by
// (author_id, title, first_published). Listings reference books; deleting a
// book removes its listings.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, created, err := repo.FindOrCreate(ctx, author.ID, "Nine Stories", 1953)
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/entities"
)

// Filter narrows List results. Zero values match everything.
type Filter struct {
	AuthorID uint
	Title    string // case-insensitive substring
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book. The author must exist.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Listings").Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", database.TranslateError(err))
	}
	return nil
}

// FindOrCreate returns the book identified by its natural key, inserting it
// first if needed. The returned book has its Author loaded.
func (r *Repository) FindOrCreate(ctx context.Context, authorID uint, title string, firstPublished int) (*entities.Book, bool, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Author").
		Where("author_id = ? AND title = ? AND first_published = ?", authorID, title, firstPublished).
		First(&book).Error
	if err == nil {
		return &book, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up book: %w", database.TranslateError(err))
	}

	book = entities.Book{AuthorID: authorID, Title: title, FirstPublished: firstPublished}
	if err := r.Create(ctx, &book); err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).First(&book.Author, authorID).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load author: %w", database.TranslateError(err))
	}
	return &book, true, nil
}

// GetByID retrieves a book with its author.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).Preload("Author").First(&book, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, database.TranslateError(err))
	}
	return &book, nil
}

// List returns catalog books matching the filter, oldest first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Preload("Author")
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}

	books := []entities.Book{}
	if err := query.Order("added ASC, id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// ListNotListedBy returns the books that are not yet on the user's list.
func (r *Repository) ListNotListedBy(ctx context.Context, userID uint) ([]entities.Book, error) {
	listed := r.db.Model(&entities.Listing{}).Select("book_id").Where("user_id = ?", userID)

	books := []entities.Book{}
	err := r.db.WithContext(ctx).Preload("Author").
		Where("id NOT IN (?)", listed).
		Order("added ASC, id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available books: %w", err)
	}
	return books, nil
}

// SetCover replaces the cover URL of a book.
func (r *Repository) SetCover(ctx context.Context, id uint, cover string) error {
	result := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Update("cover", cover)
	if result.Error != nil {
		return fmt.Errorf("failed to set cover for book %d: %w", id, database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, database.ErrNotFound)
	}
	return nil
}

// Delete removes a book and, by cascade, every listing of it.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("book %d: %w", id, database.ErrNotFound)
	}
	return nil
}
