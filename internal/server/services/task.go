package services

import (
	"context"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/avdeevs/taskkeeper/internal/server/models"
	"github.com/avdeevs/taskkeeper/internal/server/repositories/tasks"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, title string) (*models.Task, error) {
	if title == "" {
		return nil, common.ErrorValidation
	}
	return s.repo.Create(ctx, title)
}

func (s *TaskService) UpdateTitle(ctx context.Context, id, title string) (*models.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, common.ErrorValidation
	}
	return s.repo.UpdateTitle(ctx, oid, title)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

// parseID validates the identifier format before the store sees it, so a
// malformed id is a validation error rather than a driver error. The format
// is the driver's own 24-hex-character encoding; callers treat the id as an
// opaque string otherwise.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.ErrorValidation
	}
	return oid, nil
}
