// Package users stores and retrieves registered accounts.
package users

import (
	"context"

	"github.com/avdeevs/taskkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the user and returns it with the storage-assigned ID.
	// A username collision yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns common.ErrorNotFound for unknown usernames.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
