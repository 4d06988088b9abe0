// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, profile maintenance, and account
// deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/mpetrov/taskkeeper/internal/dbx"
	"github.com/mpetrov/taskkeeper/internal/server/auth"
	"github.com/mpetrov/taskkeeper/internal/server/config"
	"github.com/mpetrov/taskkeeper/internal/server/credentials"
	"github.com/mpetrov/taskkeeper/internal/server/models"
	"github.com/mpetrov/taskkeeper/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
//   - Signup: create an account and mint a token
//   - Login: verify credentials and mint a token
//   - Get / UpdateProfile / ChangePassword / DeleteAccount
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      credentials.Hasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the password
// hashing strategy, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher credentials.Hasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func toAPIUser(u *models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Signup creates a new account. A duplicate email yields common.ErrConflict
// and leaves the store untouched.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", common.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &api.AuthResponse{Token: token, User: toAPIUser(user)}, nil
}

// Login verifies the credentials and, on success, returns a fresh token and
// the user. Unknown email and wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &api.AuthResponse{Token: token, User: toAPIUser(user)}, nil
}

// Get returns the credential-free representation of the user.
func (s *UserService) Get(ctx context.Context, userID string) (*api.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u := toAPIUser(user)
	return &u, nil
}

// UpdateProfile merges the patch into the stored user. Unset fields keep
// their current values. A duplicate email yields common.ErrConflict.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch api.UpdateProfileRequest) (*api.User, error) {
	repo := s.repomanager.Users(s.db)

	current, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", common.ErrValidation)
		}
	}
	email := current.Email
	if patch.Email != nil {
		email = strings.TrimSpace(strings.ToLower(*patch.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: a valid email is required", common.ErrValidation)
		}
	}

	updated, err := repo.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		return nil, err
	}

	u := toAPIUser(updated)
	return &u, nil
}

// ChangePassword re-encodes the credential after verifying the current one.
// A wrong current password leaves the stored hash unchanged.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(user.PasswordHash, currentPassword) {
		return common.ErrUnauthorized
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrInternal
	}

	return repo.UpdatePassword(ctx, userID, hash)
}

// DeleteAccount removes the user and every task they own in one
// transaction. The tasks FK cascades too; the explicit delete keeps the
// semantics independent of the schema.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("error deleting tasks: %w", err)
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}
