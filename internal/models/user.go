package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account working its way through onboarding.
// The password hash is never serialized into API responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	DOB          string             `bson:"dob,omitempty" json:"dob,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	IsVerified   bool               `bson:"is_verified" json:"isVerified"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
