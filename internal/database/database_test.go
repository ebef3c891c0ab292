package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookr/internal/entities"
)

// setupTestDB creates a fresh file-backed test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(Options{
		Driver:   DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	t.Run("migrates all tables", func(t *testing.T) {
		db := setupTestDB(t)

		for _, model := range []any{&entities.User{}, &entities.Author{}, &entities.Book{}, &entities.Listing{}} {
			assert.True(t, db.DB.Migrator().HasTable(model))
		}
		assert.Equal(t, DriverSQLite, db.Driver())
		assert.NoError(t, db.Ping(context.Background()))
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := Open(Options{Driver: "mysql", Path: "x.db"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("requires path and DSN", func(t *testing.T) {
		_, err := Open(Options{Driver: DriverSQLite})
		assert.Error(t, err)

		_, err = Open(Options{Driver: DriverPostgres})
		assert.Error(t, err)
	})
}

func TestNaturalKeyConstraints(t *testing.T) {
	db := setupTestDB(t)

	author := entities.Author{FirstName: "Jerome", LastName: "Salinger"}
	require.NoError(t, db.DB.Create(&author).Error)

	dup := entities.Author{FirstName: "Jerome", LastName: "Salinger"}
	err := TranslateError(db.DB.Create(&dup).Error)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	book := entities.Book{AuthorID: author.ID, Title: "The Catcher in the Rye", FirstPublished: 1951}
	require.NoError(t, db.DB.Omit("Author").Create(&book).Error)

	dupBook := entities.Book{AuthorID: author.ID, Title: "The Catcher in the Rye", FirstPublished: 1951}
	err = TranslateError(db.DB.Omit("Author").Create(&dupBook).Error)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	// Same title, different year is a different book.
	reprint := entities.Book{AuthorID: author.ID, Title: "The Catcher in the Rye", FirstPublished: 1952}
	assert.NoError(t, db.DB.Omit("Author").Create(&reprint).Error)
}

func TestForeignKeyCascade(t *testing.T) {
	db := setupTestDB(t)

	user := entities.User{Username: "joe", Role: entities.UserRoleMember}
	require.NoError(t, db.DB.Create(&user).Error)
	author := entities.Author{FirstName: "Jerome", LastName: "Salinger"}
	require.NoError(t, db.DB.Create(&author).Error)
	book := entities.Book{AuthorID: author.ID, Title: "Nine Stories", FirstPublished: 1953}
	require.NoError(t, db.DB.Omit("Author").Create(&book).Error)
	listing := entities.Listing{UserID: user.ID, BookID: book.ID}
	require.NoError(t, db.DB.Omit("User", "Book").Create(&listing).Error)

	require.NoError(t, db.DB.Delete(&entities.Author{}, author.ID).Error)

	var books, listings int64
	db.DB.Model(&entities.Book{}).Count(&books)
	db.DB.Model(&entities.Listing{}).Count(&listings)
	assert.Zero(t, books)
	assert.Zero(t, listings)

	orphan := entities.Book{AuthorID: 9999, Title: "Orphan", FirstPublished: 2000}
	err := TranslateError(db.DB.Omit("Author").Create(&orphan).Error)
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrConstraintViolation},
		{"sqlite unique", errors.New("UNIQUE constraint failed: authors.first_name"), ErrConstraintViolation},
		{"postgres fk", errors.New(`ERROR: insert violates foreign key constraint "fk_books_author"`), ErrConstraintViolation},
		{"sqlite driver error", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrConstraintViolation},
		{"pgconn unique", &pgconn.PgError{Code: "23505", Message: "duplicate"}, ErrConstraintViolation},
		{"wrapped pgconn fk", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("passes through unrelated errors", func(t *testing.T) {
		in := errors.New("disk full")
		assert.Equal(t, in, TranslateError(in))
	})
}
