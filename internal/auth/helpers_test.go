package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/database/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "correct-horse-battery"

func testAuthConfig(mode config.AuthMode) config.Auth {
	return config.Auth{
		Mode:             mode,
		SessionLifetime:  time.Hour,
		BcryptCost:       4,
		MaxLoginAttempts: 3,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  10 * time.Minute,
	}
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver:   database.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "auth.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestService(t *testing.T, mode config.AuthMode) (*Service, *users.Repository, *database.Database) {
	t.Helper()
	db := setupTestDB(t)
	repo := users.NewRepository(db.DB)
	return NewService(repo, testAuthConfig(mode)), repo, db
}
