// Package services contains server-side business logic. This file implements
// UserService: registration, login, logout, and resolving bearer tokens to
// users for request authorization.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/itemgallery/backend/internal/common"
	"github.com/itemgallery/backend/internal/dbx"
	"github.com/itemgallery/backend/internal/server/auth"
	"github.com/itemgallery/backend/internal/server/config"
	"github.com/itemgallery/backend/internal/server/models"
	"github.com/itemgallery/backend/internal/server/repositories/repomanager"
)

// Profile carries the optional display fields supplied at registration.
type Profile struct {
	FirstName string
	LastName  string
	NickName  string
}

// UserService provides authentication-related operations:
//   - Register: create a user and mint its first token
//   - Login: verify credentials and mint a token
//   - Logout: revoke every token of the caller
//   - Authorize: resolve a bearer header to a full user
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        auth.Hasher
	generator     *auth.TokenGenerator
	singleSession bool
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	hasher, err := auth.NewHasher(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}
	generator, err := auth.NewTokenGenerator(cfg.TokenFormat)
	if err != nil {
		return nil, err
	}
	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        hasher,
		generator:     generator,
		singleSession: cfg.SingleSession,
	}, nil
}

// Register creates a new user with the given email and password and mints its
// first auth token. The user insert and token mint run in one transaction, so
// a failed mint never leaves a user without a working session. A duplicate
// email returns common.ErrEmailExists whether it was caught by the pre-check
// or by the unique index during a concurrent registration.
func (s *UserService) Register(ctx context.Context, email, password string, profile Profile) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", common.ErrEmailExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", fmt.Errorf("error checking email: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		Email:          email,
		PasswordDigest: digest,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		NickName:       profile.NickName,
	}

	var token string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		token, err = s.issueToken(ctx, tx, created.ID)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return nil, "", common.ErrEmailExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	return user, token, nil
}

// Login verifies the email/password pair and, on success, mints a new token.
// An unknown email and a wrong password both return ErrInvalidCredentials so
// the caller cannot probe which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}
	if !s.hasher.Verify(user.PasswordDigest, password) {
		return "", common.ErrInvalidCredentials
	}

	var token string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var issueErr error
		token, issueErr = s.issueToken(ctx, tx, user.ID)
		return issueErr
	}); err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Logout revokes every token of the given user. Revoking when none exist is
// a no-op, not an error.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	if err := s.repomanager.Tokens(s.db).DeleteAllForUser(ctx, userID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Authorize resolves the raw Authorization header value to the full user.
// A missing or malformed header and an unresolvable token all return
// ErrorUnauthorized. A token whose owning user row is gone returns
// ErrUserNotFound: the token is real, so this is a consistency fault rather
// than a bad credential.
func (s *UserService) Authorize(ctx context.Context, rawHeader string) (*models.User, error) {
	token, ok := bearerToken(rawHeader)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	userID, err := s.repomanager.Tokens(s.db).FindUserID(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// issueToken mints and persists a token for userID on the given handle.
// In single-session mode any previous tokens are deleted first; running
// inside the caller's transaction keeps revoke+mint atomic.
func (s *UserService) issueToken(ctx context.Context, tx dbx.DBTX, userID int64) (string, error) {
	repo := s.repomanager.Tokens(tx)

	if s.singleSession {
		if err := repo.DeleteAllForUser(ctx, userID); err != nil {
			return "", err
		}
	}

	token, err := s.generator.Generate()
	if err != nil {
		return "", err
	}
	if err := repo.Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// value. Any other shape is rejected.
func bearerToken(rawHeader string) (string, bool) {
	parts := strings.SplitN(rawHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
