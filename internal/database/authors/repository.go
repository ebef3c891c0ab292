// Package authors provides database operations for the shared author catalog.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, created, err := repo.FindOrCreate(ctx, "J. D.", "Salinger")
package authors

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new author. A duplicate (first_name, last_name) pair
// fails with database.ErrConstraintViolation.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	if err := r.db.WithContext(ctx).Omit("Books").Create(author).Error; err != nil {
		return fmt.Errorf("failed to create author: %w", database.TranslateError(err))
	}
	return nil
}

// FindOrCreate returns the author with the given name, inserting it first
// if it does not exist yet. created reports whether a row was inserted.
func (r *Repository) FindOrCreate(ctx context.Context, firstName, lastName string) (*entities.Author, bool, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		First(&author).Error
	if err == nil {
		return &author, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up author: %w", database.TranslateError(err))
	}

	author = entities.Author{FirstName: firstName, LastName: lastName}
	if err := r.Create(ctx, &author); err != nil {
		return nil, false, err
	}
	return &author, true, nil
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get author %d: %w", id, database.TranslateError(err))
	}
	return &author, nil
}

// List returns all authors ordered by last name, then first name.
func (r *Repository) List(ctx context.Context) ([]entities.Author, error) {
	authors := []entities.Author{}
	err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC, id ASC").Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// Delete removes an author together with its books and their listings.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Author{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete author %d: %w", id, database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("author %d: %w", id, database.ErrNotFound)
	}
	return nil
}
