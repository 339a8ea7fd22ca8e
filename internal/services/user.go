// Package services contains the business logic on top of the repositories.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/Kentemie/Fast-and-Furious/internal/auth"
	"github.com/Kentemie/Fast-and-Furious/internal/cache"
	"github.com/Kentemie/Fast-and-Furious/internal/db/models"
	"github.com/Kentemie/Fast-and-Furious/internal/db/repos"
	"github.com/Kentemie/Fast-and-Furious/internal/logger"
)

// User service errors
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrUserInactive            = errors.New("user is inactive")
	ErrUserAlreadyVerified     = errors.New("user is already verified")
	ErrBadCredentials          = errors.New("bad credentials")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrInvalidResetToken       = errors.New("invalid reset password token")
)

// TokenBlacklist is the revoked-token store used at logout and by the
// authentication middleware.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// SecurityStore holds single-use verification codes and reset tokens.
type SecurityStore interface {
	PutVerificationCode(ctx context.Context, code string, userID uint, ttl time.Duration) error
	ConsumeVerificationCode(ctx context.Context, code string) (uint, error)
	PutResetToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (uint, error)
}

// UserUpdate carries the optional fields of a user update. Nil means
// "leave unchanged". The flag fields are only applied on unsafe updates
// (superuser-initiated).
type UserUpdate struct {
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	IsActive    *bool
	IsSuperuser *bool
	IsVerified  *bool
}

// User provides business logic for account operations
type User struct {
	repo      *repos.UserRepository
	passwords *auth.PasswordHelper
	security  SecurityStore

	codeTTL  time.Duration
	resetTTL time.Duration
}

// NewUserService creates a new user service instance
func NewUserService(repo *repos.UserRepository, passwords *auth.PasswordHelper,
	security SecurityStore, codeTTL, resetTTL time.Duration) *User {
	return &User{
		repo:      repo,
		passwords: passwords,
		security:  security,
		codeTTL:   codeTTL,
		resetTTL:  resetTTL,
	}
}

// Register creates a new account with the given plaintext password.
// The is_active/is_superuser/is_verified flags of the passed user are
// always reset; registration never produces privileged accounts.
func (s *User) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if err := s.passwords.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByEmail(ctx, user.Email); err == nil {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = hashed
	user.IsActive = true
	user.IsSuperuser = false
	user.IsVerified = false

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.Join(ErrUserAlreadyExists, err)
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user.
// Returns ErrBadCredentials for unknown emails and wrong passwords alike.
// Stored hashes using an outdated scheme are transparently upgraded.
func (s *User) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Run the hasher anyway so unknown emails take as long as bad passwords.
		_, _ = s.passwords.Hash(password)
		return nil, ErrBadCredentials
	}

	ok, updated, err := s.passwords.VerifyAndUpdate(password, user.HashedPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBadCredentials
	}

	if updated != "" {
		user.HashedPassword = updated
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			// The login itself succeeded; the upgrade retries next time.
			logger.Warnf("failed to upgrade password hash for user %d: %v", user.ID, err)
		}
	}
	return user, nil
}

// GetByID retrieves a user by id
func (s *User) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrUserNotFound, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (s *User) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.Join(ErrUserNotFound, err)
	}
	return user, nil
}

// List retrieves users with pagination
func (s *User) List(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.GetUsers(ctx, opts)
}

// Update applies the given changes to the user. Safe updates (the user
// editing their own account) ignore the privilege flags; unsafe updates
// apply everything.
func (s *User) Update(ctx context.Context, user *models.User, update UserUpdate, safe bool) (*models.User, error) {
	if update.Email != nil && *update.Email != user.Email {
		if other, err := s.repo.GetUserByEmail(ctx, *update.Email); err == nil && other.ID != user.ID {
			return nil, ErrUserAlreadyExists
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		if err := s.passwords.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}
		hashed, err := s.passwords.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if !safe {
		if update.IsActive != nil {
			user.IsActive = *update.IsActive
		}
		if update.IsSuperuser != nil {
			user.IsSuperuser = *update.IsSuperuser
		}
		if update.IsVerified != nil {
			user.IsVerified = *update.IsVerified
		}
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user account
func (s *User) Delete(ctx context.Context, userID uint) error {
	return s.repo.DeleteUser(ctx, userID)
}

// RequestVerification issues a verification code for the given email and
// returns it for delivery. Inactive and already-verified users are refused.
func (s *User) RequestVerification(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", errors.Join(ErrUserNotFound, err)
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}
	if user.IsVerified {
		return "", ErrUserAlreadyVerified
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return "", err
	}
	if err := s.security.PutVerificationCode(ctx, code, user.ID, s.codeTTL); err != nil {
		return "", err
	}
	return code, nil
}

// Verify redeems a verification code and marks the owning account verified.
func (s *User) Verify(ctx context.Context, code string) (*models.User, error) {
	userID, err := s.security.ConsumeVerificationCode(ctx, code)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrInvalidVerificationCode
	}
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrUserNotFound, err)
	}
	if user.IsVerified {
		return nil, ErrUserAlreadyVerified
	}

	user.IsVerified = true
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword issues a reset-password token for the given email and
// returns it for delivery. Inactive users are refused.
func (s *User) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", errors.Join(ErrUserNotFound, err)
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	token, err := auth.GenerateResetToken()
	if err != nil {
		return "", err
	}
	if err := s.security.PutResetToken(ctx, token, user.ID, s.resetTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword redeems a reset token and replaces the account password.
// The token is single-use: it is consumed even when the new password is
// rejected by the policy.
func (s *User) ResetPassword(ctx context.Context, token, password string) error {
	userID, err := s.security.ConsumeResetToken(ctx, token)
	if errors.Is(err, cache.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.Join(ErrUserNotFound, err)
	}
	if !user.IsActive {
		return ErrUserInactive
	}

	if err := s.passwords.ValidatePassword(password); err != nil {
		return err
	}
	hashed, err := s.passwords.Hash(password)
	if err != nil {
		return err
	}

	user.HashedPassword = hashed
	return s.repo.UpdateUser(ctx, user)
}
