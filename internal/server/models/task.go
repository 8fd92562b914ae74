package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task is a global to-do item. Tasks carry no ownership link to a user.
type Task struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title string             `bson:"title" json:"title"`
}
