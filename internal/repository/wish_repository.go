package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/Wish_Collector/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWishRepository stores wishes as documents in the "wishes" collection.
// Inserts are atomic per document, so no additional locking is needed.
type MongoWishRepository struct {
	collection *mongo.Collection
	ids        IDGenerator
	clock      Clock
}

func NewMongoWishRepository(db *mongo.Database, ids IDGenerator, clock Clock) *MongoWishRepository {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &MongoWishRepository{
		collection: db.Collection("wishes"),
		ids:        ids,
		clock:      clock,
	}
}

func (r *MongoWishRepository) Append(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	record := stamp(wish, r.ids, r.clock)

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		logrus.WithError(err).Error("Failed to insert wish")
		return nil, &StoreError{Kind: BackendFailed, Err: fmt.Errorf("failed to create wish: %w", err)}
	}
	return &record, nil
}

func (r *MongoWishRepository) LoadAll(ctx context.Context) ([]models.Wish, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &StoreError{Kind: BackendFailed, Err: fmt.Errorf("failed to get wishes: %w", err)}
	}
	defer cursor.Close(ctx)

	wishes := []models.Wish{}
	for cursor.Next(ctx) {
		var wish models.Wish
		if err := cursor.Decode(&wish); err != nil {
			return nil, &StoreError{Kind: BackendFailed, Err: err}
		}
		wishes = append(wishes, wish)
	}
	if err := cursor.Err(); err != nil {
		return nil, &StoreError{Kind: BackendFailed, Err: err}
	}

	return wishes, nil
}
