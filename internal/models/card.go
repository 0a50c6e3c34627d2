package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card is a stored payment instrument owned by exactly one verified user.
// Cards are immutable once created; there are no update or delete paths.
type Card struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	CardNumber  string             `bson:"card_number" json:"cardNumber"`
	ExpiryMonth string             `bson:"expiry_month" json:"expiryMonth"`
	ExpiryYear  string             `bson:"expiry_year" json:"expiryYear"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
