package users

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.Open(database.Options{
		Path:     filepath.Join(t.TempDir(), "users.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_Create(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	user := &entities.User{Username: "joe", Email: "joe@example.com"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, entities.UserRoleMember, user.Role)

	err := repo.Create(ctx, &entities.User{Username: "joe"})
	assert.ErrorIs(t, err, database.ErrConstraintViolation)
}

func TestRepository_GetByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created := &entities.User{Username: "joe"}
	require.NoError(t, repo.Create(ctx, created))

	user, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "joe", user.Username)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_GetByLogin(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created := &entities.User{Username: "joe", Email: "joe@example.com"}
	require.NoError(t, repo.Create(ctx, created))
	require.NoError(t, repo.Create(ctx, &entities.User{Username: "ann"}))

	byName, err := repo.GetByLogin(ctx, "joe")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := repo.GetByLogin(ctx, "joe@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByLogin(ctx, "")
	assert.ErrorIs(t, err, database.ErrNotFound, "empty email never matches")

	_, err = repo.GetByLogin(ctx, "nonexistent")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_EnsureLocalUser(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first, err := repo.EnsureLocalUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, LocalUsername, first.Username)
	assert.True(t, first.IsAdmin())

	second, err := repo.EnsureLocalUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_LoginBookkeeping(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	user := &entities.User{Username: "joe"}
	require.NoError(t, repo.Create(ctx, user))

	lockedUntil := time.Now().Add(time.Hour)
	require.NoError(t, repo.RecordFailedLogin(ctx, user.ID, 5, &lockedUntil))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.FailedLoginCount)
	require.NotNil(t, got.LockedUntil)

	require.NoError(t, repo.RecordLogin(ctx, user.ID, time.Now()))

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, got.FailedLoginCount)
	assert.Nil(t, got.LockedUntil)
	assert.NotNil(t, got.LastLoginAt)

	assert.ErrorIs(t, repo.RecordLogin(ctx, 999, time.Now()), database.ErrNotFound)
}
