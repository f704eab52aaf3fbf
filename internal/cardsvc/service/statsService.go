package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/twcards/card-services/internal/cardsvc/models"
)

// StatsService computes issuer/tag/benefit-category distributions over the
// whole catalog.
type StatsService struct {
	store CardStore
}

func NewStatsService(store CardStore) *StatsService {
	return &StatsService{store: store}
}

// Statistics counts the catalog and groups it three ways. Every card
// contributes to exactly one issuer group, so issuer counts sum to the
// total. Tags and benefit categories are unwound first: a card with three
// tags contributes three times, a card with none contributes nothing.
func (s *StatsService) Statistics(ctx context.Context) (*models.Stats, error) {
	total, err := s.store.Count(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}

	var issuers []models.IssuerCount
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$issuer", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}
	if err := s.store.Aggregate(ctx, pipeline, &issuers); err != nil {
		return nil, fmt.Errorf("aggregate issuers: %w", err)
	}

	var tags []models.TagCount
	pipeline = []bson.M{
		{"$unwind": "$tags"},
		{"$group": bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}
	if err := s.store.Aggregate(ctx, pipeline, &tags); err != nil {
		return nil, fmt.Errorf("aggregate tags: %w", err)
	}

	var categories []models.CategoryCount
	pipeline = []bson.M{
		{"$unwind": "$benefits"},
		{"$group": bson.M{"_id": "$benefits.category", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	}
	if err := s.store.Aggregate(ctx, pipeline, &categories); err != nil {
		return nil, fmt.Errorf("aggregate benefit categories: %w", err)
	}

	return &models.Stats{
		TotalCards:  total,
		Issuers:     models.IssuerStats{Total: len(issuers), Details: issuers},
		Tags:        models.TagStats{Total: len(tags), Details: tags},
		Benefits:    models.BenefitStats{Total: len(categories), Details: categories},
		LastUpdated: time.Now().UTC(),
	}, nil
}
