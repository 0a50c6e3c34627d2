package repository

import (
	"context"
	"time"

	"github.com/fathima-sithara/onboarding-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CardRepository defines the persistence operations for payment cards.
// Cards are append-only; there is no update or delete.
type CardRepository interface {
	Create(ctx context.Context, c *models.Card) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Card, error)
}

type mongoCardRepo struct {
	col *mongo.Collection
}

func NewMongoCardRepo(db *mongo.Database, collection string) CardRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return &mongoCardRepo{col: col}
}

func (r *mongoCardRepo) Create(ctx context.Context, c *models.Card) error {
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// FindByUserID returns the user's cards, newest first.
func (r *mongoCardRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Card, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cards := make([]models.Card, 0)
	if err := cur.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
