// Package models defines the persisted document shapes.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Created once at registration and immutable
// afterwards; no exposed operation deletes users. PasswordHash always holds
// bcrypt output, never a plaintext password.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"created_at"`
}
