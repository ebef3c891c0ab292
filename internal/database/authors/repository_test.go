package authors

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	db, err := database.Open(database.Options{
		Path:     filepath.Join(t.TempDir(), "authors.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB), db
}

func TestRepository_Create(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	author := &entities.Author{FirstName: "J. D.", LastName: "Salinger"}
	require.NoError(t, repo.Create(ctx, author))
	assert.NotZero(t, author.ID)
	assert.Equal(t, "J. D. Salinger", author.String())

	err := repo.Create(ctx, &entities.Author{FirstName: "J. D.", LastName: "Salinger"})
	assert.ErrorIs(t, err, database.ErrConstraintViolation)
}

func TestRepository_FindOrCreate(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	first, created, err := repo.FindOrCreate(ctx, "Ursula K.", "Le Guin")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.FindOrCreate(ctx, "Ursula K.", "Le Guin")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, database.ErrNotFound)

	author, _, err := repo.FindOrCreate(ctx, "Jane", "Austen")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Austen", got.LastName)
}

func TestRepository_List(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range [][2]string{{"Leo", "Tolstoy"}, {"Jane", "Austen"}, {"Anne", "Tolstoy"}} {
		_, _, err := repo.FindOrCreate(ctx, name[0], name[1])
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Jane Austen", all[0].String())
	assert.Equal(t, "Anne Tolstoy", all[1].String())
	assert.Equal(t, "Leo Tolstoy", all[2].String())
}

func TestRepository_Delete(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	author, _, err := repo.FindOrCreate(ctx, "J. D.", "Salinger")
	require.NoError(t, err)
	book := entities.Book{AuthorID: author.ID, Title: "Nine Stories", FirstPublished: 1953}
	require.NoError(t, db.DB.Omit("Author").Create(&book).Error)

	require.NoError(t, repo.Delete(ctx, author.ID))

	var count int64
	db.DB.Model(&entities.Book{}).Count(&count)
	assert.Zero(t, count, "books cascade with their author")

	assert.ErrorIs(t, repo.Delete(ctx, author.ID), database.ErrNotFound)
}
