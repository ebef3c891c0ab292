// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername(ctx, "joe")
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/entities"
)

// LocalUsername is the account every request acts as when authentication
// is disabled.
const LocalUsername = "local"

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user. A taken username fails with
// database.ErrConstraintViolation.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	if user.Role == "" {
		user.Role = entities.UserRoleMember
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", database.TranslateError(err))
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, database.TranslateError(err))
	}
	return &user, nil
}

// GetByLogin retrieves a user by username or email.
func (r *Repository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("username = ? OR (email <> '' AND email = ?)", login, login).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", login, database.TranslateError(err))
	}
	return &user, nil
}

// EnsureLocalUser returns the single-user-mode account, creating it as an
// admin on first use.
func (r *Repository) EnsureLocalUser(ctx context.Context) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("username = ?", LocalUsername).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up local user: %w", err)
	}

	user = entities.User{Username: LocalUsername, Role: entities.UserRoleAdmin}
	if err := r.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Count returns the number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// RecordLogin stamps a successful login and clears the lockout state.
func (r *Repository) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	return r.updateFields(ctx, id, map[string]any{
		"last_login_at":      at,
		"failed_login_count": 0,
		"locked_until":       nil,
	})
}

// RecordFailedLogin stores the failed attempt counter and, when set, the
// time until which the account stays locked.
func (r *Repository) RecordFailedLogin(ctx context.Context, id uint, failedCount int, lockedUntil *time.Time) error {
	fields := map[string]any{"failed_login_count": failedCount}
	if lockedUntil != nil {
		fields["locked_until"] = *lockedUntil
	}
	return r.updateFields(ctx, id, fields)
}

func (r *Repository) updateFields(ctx context.Context, id uint, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, database.ErrNotFound)
	}
	return nil
}
