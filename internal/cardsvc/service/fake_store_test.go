package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twcards/card-services/internal/cardsvc/models"
)

// fakeStore scripts store responses per call and records the predicates the
// engines compile, so tests can assert both cascade order and filter shape.
type fakeStore struct {
	findOneFn   func(filter bson.M) (*models.Card, error)
	findFn      func(filter bson.M, opts *options.FindOptions) ([]models.Card, error)
	insertFn    func(card *models.Card) (models.CardID, error)
	updateFn    func(id models.CardID, set bson.M) (int64, int64, error)
	deleteFn    func(id models.CardID) (int64, error)
	countFn     func(filter bson.M) (int64, error)
	aggregateFn func(pipeline []bson.M, results interface{}) error

	findOneFilters []bson.M
	findFilters    []bson.M
	findOpts       []*options.FindOptions
	pipelines      [][]bson.M
	updateSets     []bson.M
}

func (f *fakeStore) FindOne(_ context.Context, filter bson.M) (*models.Card, error) {
	f.findOneFilters = append(f.findOneFilters, filter)
	if f.findOneFn == nil {
		return nil, nil
	}
	return f.findOneFn(filter)
}

func (f *fakeStore) Find(_ context.Context, filter bson.M, opts *options.FindOptions) ([]models.Card, error) {
	f.findFilters = append(f.findFilters, filter)
	f.findOpts = append(f.findOpts, opts)
	if f.findFn == nil {
		return nil, nil
	}
	return f.findFn(filter, opts)
}

func (f *fakeStore) Insert(_ context.Context, card *models.Card) (models.CardID, error) {
	if f.insertFn == nil {
		return models.NewCardID(), nil
	}
	return f.insertFn(card)
}

func (f *fakeStore) Update(_ context.Context, id models.CardID, set bson.M) (int64, int64, error) {
	f.updateSets = append(f.updateSets, set)
	if f.updateFn == nil {
		return 1, 1, nil
	}
	return f.updateFn(id, set)
}

func (f *fakeStore) Delete(_ context.Context, id models.CardID) (int64, error) {
	if f.deleteFn == nil {
		return 1, nil
	}
	return f.deleteFn(id)
}

func (f *fakeStore) Count(_ context.Context, filter bson.M) (int64, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(filter)
}

func (f *fakeStore) Aggregate(_ context.Context, pipeline []bson.M, results interface{}) error {
	f.pipelines = append(f.pipelines, pipeline)
	if f.aggregateFn == nil {
		return nil
	}
	return f.aggregateFn(pipeline, results)
}
