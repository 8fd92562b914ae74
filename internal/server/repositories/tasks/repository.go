// Package tasks stores and retrieves task documents.
package tasks

import (
	"context"

	"github.com/avdeevs/taskkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	// List returns all tasks in storage-native order.
	List(ctx context.Context) ([]models.Task, error)

	// Create inserts a task and returns it with the storage-assigned ID.
	Create(ctx context.Context, title string) (*models.Task, error)

	// UpdateTitle replaces the title of an existing task and returns the
	// updated record, or common.ErrorNotFound for an unknown id.
	UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Task, error)

	// Delete removes the task, or returns common.ErrorNotFound.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
