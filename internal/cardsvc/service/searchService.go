package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twcards/card-services/internal/cardsvc/models"
)

// SearchService compiles caller-supplied filters into store predicates and
// runs the list-returning queries.
type SearchService struct {
	store CardStore
}

func NewSearchService(store CardStore) *SearchService {
	return &SearchService{store: store}
}

// List returns a page of the catalog, optionally narrowed by issuer
// substring and tag membership, sorted by cardName ascending. Zero matches
// is a valid empty result.
func (s *SearchService) List(ctx context.Context, page Page, issuer string, tags []string) ([]models.Card, error) {
	opts := options.Find().
		SetSkip(page.Skip).
		SetLimit(page.Limit).
		SetSort(bson.D{{Key: "cardName", Value: 1}})

	cards, err := s.store.Find(ctx, listFilter(issuer, tags), opts)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// Search matches the keyword as a case-insensitive substring across card
// name, issuer, tags, benefit categories and raw parsed content. A record
// matches if any field matches. Zero matches is a valid empty result.
func (s *SearchService) Search(ctx context.Context, page Page, keyword string) ([]models.Card, error) {
	opts := options.Find().SetSkip(page.Skip).SetLimit(page.Limit)

	cards, err := s.store.Find(ctx, searchFilter(keyword), opts)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	return cards, nil
}

// SearchByName returns every card whose name matches: equality when exact,
// case-insensitive substring otherwise. Unlike the resolver this is
// list-returning, and zero matches is NotFound.
func (s *SearchService) SearchByName(ctx context.Context, name string, exact bool) ([]models.Card, error) {
	cards, err := s.store.Find(ctx, nameFilter(name, exact), nil)
	if err != nil {
		return nil, fmt.Errorf("search cards by name: %w", err)
	}
	if len(cards) == 0 {
		return nil, &NotFoundError{Query: name}
	}
	return cards, nil
}

// ByIssuer lists cards of one issuer, exact field match. NotFound when the
// issuer has no cards.
func (s *SearchService) ByIssuer(ctx context.Context, page Page, issuer string) ([]models.Card, error) {
	opts := options.Find().SetSkip(page.Skip).SetLimit(page.Limit)

	cards, err := s.store.Find(ctx, bson.M{"issuer": issuer}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cards by issuer: %w", err)
	}
	if len(cards) == 0 {
		return nil, &NotFoundError{Query: issuer}
	}
	return cards, nil
}

// ByTag lists cards carrying the tag. NotFound when no card has it.
func (s *SearchService) ByTag(ctx context.Context, page Page, tag string) ([]models.Card, error) {
	opts := options.Find().SetSkip(page.Skip).SetLimit(page.Limit)

	cards, err := s.store.Find(ctx, bson.M{"tags": tag}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cards by tag: %w", err)
	}
	if len(cards) == 0 {
		return nil, &NotFoundError{Query: tag}
	}
	return cards, nil
}
