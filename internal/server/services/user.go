// Package services implements the business operations behind the HTTP API.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/avdeevs/taskkeeper/internal/server/auth"
	"github.com/avdeevs/taskkeeper/internal/server/config"
	"github.com/avdeevs/taskkeeper/internal/server/models"
	"github.com/avdeevs/taskkeeper/internal/server/repositories/users"
)

// AuthResult is returned by Register and Login: the created/authenticated
// user's id and a freshly issued access token.
type AuthResult struct {
	UserID string
	Token  string
}

type UserService struct {
	repo          users.Repository
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates an account and issues a token. Duplicate usernames yield
// common.ErrorAlreadyExists; the store's unique index is the authority, so
// concurrent registrations of the same name cannot both persist.
func (s *UserService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID.Hex(), username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{UserID: user.ID.Hex(), Token: token}, nil
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password both map to common.ErrorUnauthorized so responses do not
// reveal which usernames exist.
func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID.Hex(), username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{UserID: user.ID.Hex(), Token: token}, nil
}
