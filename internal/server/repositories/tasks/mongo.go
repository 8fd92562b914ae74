package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevs/taskkeeper/internal/common"
	"github.com/avdeevs/taskkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "tasks"

type MongoRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoRepository(db *mongo.Database, timeout time.Duration) *MongoRepository {
	return &MongoRepository{col: db.Collection(collectionName), timeout: timeout}
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("error decoding tasks: %w", err)
	}

	return tasks, nil
}

func (r *MongoRepository) Create(ctx context.Context, title string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	task := &models.Task{Title: title}

	res, err := r.col.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error inserting task: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	task.ID = id

	return task, nil
}

func (r *MongoRepository) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	task := &models.Task{}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"title": title}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return task, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}

	return nil
}
