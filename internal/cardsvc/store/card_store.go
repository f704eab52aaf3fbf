package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twcards/card-services/internal/cardsvc/models"
	"github.com/twcards/card-services/internal/cardsvc/service"
)

// CardStore is the MongoDB-backed catalog collection.
type CardStore struct {
	coll *mongo.Collection
}

func NewCardStore(db *mongo.Database) *CardStore {
	return &CardStore{coll: db.Collection(service.CollectionName)}
}

func (s *CardStore) FindOne(ctx context.Context, filter bson.M) (*models.Card, error) {
	var card models.Card
	err := s.coll.FindOne(ctx, filter).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return &card, nil
}

func (s *CardStore) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Card, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}

func (s *CardStore) Insert(ctx context.Context, card *models.Card) (models.CardID, error) {
	res, err := s.coll.InsertOne(ctx, card)
	if err != nil {
		return models.CardID{}, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.CardID{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return models.ParseCardID(oid.Hex())
}

func (s *CardStore) Update(ctx context.Context, id models.CardID, set bson.M) (int64, int64, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (s *CardStore) Delete(ctx context.Context, id models.CardID) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete card: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *CardStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

func (s *CardStore) Aggregate(ctx context.Context, pipeline []bson.M, results interface{}) error {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate cards: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("failed to decode aggregation: %w", err)
	}
	return nil
}
