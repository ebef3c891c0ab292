// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (SQLite or PostgreSQL), migrations
//	├── errors.go        # ErrNotFound, ErrConstraintViolation, TranslateError
//	├── authors/         # Author CRUD and find-or-create
//	├── books/           # Shared book catalog
//	├── listings/        # Per-user list entries, ratings and overrides
//	├── rankings/        # Dashboard ranking queries
//	└── users/           # User management
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./bookr.db")
//
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//	listingsRepo := listings.NewRepository(db.DB)
//
//	author, created, err := authorsRepo.FindOrCreate(ctx, "Jerome", "Salinger")
//
// # Errors
//
// Repositories never return raw gorm errors for the two conditions callers
// act on: a missing (or foreign) record wraps ErrNotFound and a broken
// natural key or foreign key wraps ErrConstraintViolation. Use errors.Is.
//
// # Natural keys
//
// Authors are unique by (first_name, last_name), books by
// (author_id, title, first_published) and listings by (user_id, book_id).
// Strict Create methods surface duplicates as ErrConstraintViolation;
// FindOrCreate methods return the existing row instead.
package database
