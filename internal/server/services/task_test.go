package services

import (
	"context"
	"testing"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/avdeevs/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTasksRepo struct {
	listOut []models.Task
	listErr error

	createOut *models.Task
	createErr error

	updateOut *models.Task
	updateErr error
	updateID  primitive.ObjectID

	deleteErr error
	deleteID  primitive.ObjectID
}

func (f *fakeTasksRepo) List(ctx context.Context) ([]models.Task, error) {
	return f.listOut, f.listErr
}

func (f *fakeTasksRepo) Create(ctx context.Context, title string) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return &models.Task{ID: primitive.NewObjectID(), Title: title}, nil
}

func (f *fakeTasksRepo) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Task, error) {
	f.updateID = id
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return &models.Task{ID: id, Title: title}, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.deleteID = id
	return f.deleteErr
}

func TestTaskService_CreateValidatesTitle(t *testing.T) {
	t.Parallel()

	s := NewTaskService(&fakeTasksRepo{})

	_, err := s.Create(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	task, err := s.Create(context.Background(), "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Title)
	assert.False(t, task.ID.IsZero())
}

func TestTaskService_UpdateTitle(t *testing.T) {
	t.Parallel()

	repo := &fakeTasksRepo{}
	s := NewTaskService(repo)
	id := primitive.NewObjectID()

	task, err := s.UpdateTitle(context.Background(), id.Hex(), "new title")
	require.NoError(t, err)
	assert.Equal(t, "new title", task.Title)
	assert.Equal(t, id, repo.updateID, "the parsed id must reach the repository")
}

func TestTaskService_MalformedIDIsValidationError(t *testing.T) {
	t.Parallel()

	s := NewTaskService(&fakeTasksRepo{})

	// syntactically invalid ids never reach the store
	for _, id := range []string{"nonsense", "", "zzzzzzzzzzzzzzzzzzzzzzzz", "abc123"} {
		_, err := s.UpdateTitle(context.Background(), id, "t")
		assert.ErrorIs(t, err, common.ErrorValidation, "update id %q", id)

		err = s.Delete(context.Background(), id)
		assert.ErrorIs(t, err, common.ErrorValidation, "delete id %q", id)
	}
}

func TestTaskService_UpdateMissingTaskIsNotFound(t *testing.T) {
	t.Parallel()

	s := NewTaskService(&fakeTasksRepo{updateErr: common.ErrorNotFound})

	_, err := s.UpdateTitle(context.Background(), primitive.NewObjectID().Hex(), "t")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskService_DeleteMissingTaskIsNotFound(t *testing.T) {
	t.Parallel()

	s := NewTaskService(&fakeTasksRepo{deleteErr: common.ErrorNotFound})

	err := s.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskService_List(t *testing.T) {
	t.Parallel()

	want := []models.Task{
		{ID: primitive.NewObjectID(), Title: "a"},
		{ID: primitive.NewObjectID(), Title: "b"},
	}
	s := NewTaskService(&fakeTasksRepo{listOut: want})

	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
