package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/database"
	"github.com/mrlokans/bookr/internal/database/users"
	"github.com/mrlokans/bookr/internal/entities"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrAccountLocked    = errors.New("account is locked due to too many failed login attempts")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
)

const defaultLockoutThreshold = 5

// UserStore is the user persistence the service needs.
type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByLogin(ctx context.Context, login string) (*entities.User, error)
	EnsureLocalUser(ctx context.Context) (*entities.User, error)
	Count(ctx context.Context) (int64, error)
	RecordLogin(ctx context.Context, id uint, at time.Time) error
	RecordFailedLogin(ctx context.Context, id uint, failedCount int, lockedUntil *time.Time) error
}

// Service handles authentication and user management.
type Service struct {
	users  UserStore
	config config.Auth
	now    func() time.Time
}

// NewService creates a new authentication service.
func NewService(users UserStore, cfg config.Auth) *Service {
	return &Service{
		users:  users,
		config: cfg,
		now:    time.Now,
	}
}

// CreateUser creates a new user with password authentication. Email is
// optional; when given it must look like an address.
func (s *Service) CreateUser(ctx context.Context, username, email, password string, role entities.UserRole) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	if email != "" && (len(email) > 254 || !emailPattern.MatchString(email)) {
		return nil, ErrEmailInvalid
	}

	switch role {
	case entities.UserRoleAdmin, entities.UserRoleMember:
	default:
		return nil, ErrInvalidRole
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrConstraintViolation) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	log.Info().Str("username", username).Str("role", string(role)).Msg("User created")
	return user, nil
}

// Authenticate validates credentials and returns the user. Repeated
// failures lock the account for the configured duration.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*entities.User, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, ErrAccountLocked
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		s.recordFailedLogin(ctx, user, now)
		return nil, err
	}

	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("Failed to record login")
	}
	user.LastLoginAt = &now
	user.FailedLoginCount = 0
	user.LockedUntil = nil

	return user, nil
}

func (s *Service) recordFailedLogin(ctx context.Context, user *entities.User, now time.Time) {
	user.FailedLoginCount++

	threshold := s.config.MaxLoginAttempts
	if threshold <= 0 {
		threshold = defaultLockoutThreshold
	}

	var lockedUntil *time.Time
	if user.FailedLoginCount >= threshold {
		lockout := s.config.LockoutDuration
		if lockout == 0 {
			lockout = 30 * time.Minute
		}
		until := now.Add(lockout)
		lockedUntil = &until
		log.Warn().Str("username", user.Username).Time("locked_until", until).Msg("Account locked")
	}

	if err := s.users.RecordFailedLogin(ctx, user.ID, user.FailedLoginCount, lockedUntil); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("Failed to record failed login")
	}
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// LocalUser returns the account used when authentication is disabled.
func (s *Service) LocalUser(ctx context.Context) (*entities.User, error) {
	return s.users.EnsureLocalUser(ctx)
}

// HasUsers reports whether any accounts exist. The single-user local account
// does not count, so a fresh install switched to local mode can run setup.
func (s *Service) HasUsers(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	if count == 1 {
		if _, err := s.users.GetByLogin(ctx, users.LocalUsername); err == nil {
			return false, nil
		}
	}
	return true, nil
}

// IsAuthEnabled returns true if authentication is required.
func (s *Service) IsAuthEnabled() bool {
	return s.config.Mode == config.AuthModeLocal
}

// Mode returns the current authentication mode.
func (s *Service) Mode() config.AuthMode {
	return s.config.Mode
}
