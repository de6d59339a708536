// Package services implements the application operations on top of the
// repositories: registration, login, token resolution, catalog reads and
// the user-product assignment ledger.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnuraagTripathy/coding-assessment/internal/common"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/auth"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/config"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/models"
	"github.com/AnuraagTripathy/coding-assessment/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a user with a freshly salted password hash. The
// plaintext password never leaves this function. A taken username is
// reported as common.ErrorAlreadyExists, whether detected here or by the
// unique index under a concurrent registration.
func (s *UserService) Register(ctx context.Context, username string, email, fullName *string, password string) (*models.User, error) {

	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hash,
		Disabled:       false,
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and mints a bearer token whose subject is
// the username. Unknown users and wrong passwords are indistinguishable
// to the caller. A disabled account can still log in; the middleware
// rejects it when the token is used.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.HashedPassword) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ResolveActive verifies a bearer token and resolves its subject to an
// enabled user. The outcome drives the middleware state machine:
// common.ErrorUnauthorized for an invalid/expired token or an
// unresolvable subject, common.ErrorUserDisabled for a disabled account.
func (s *UserService) ResolveActive(ctx context.Context, tokenString string) (*models.User, error) {

	username, err := auth.GetUsernameFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if user.Disabled {
		return nil, common.ErrorUserDisabled
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	result, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}
