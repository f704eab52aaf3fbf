package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twcards/card-services/internal/cardsvc/models"
)

const maxSuggestions = 5

// ResolveService turns an imprecisely-typed card name into exactly one
// card, or a NotFoundError carrying suggestions. It never returns an
// ambiguous set: matching runs as an ordered cascade, strictly descending
// in precision, and the first stage with exactly one hit wins. A fuzzy
// stage that hits more than one card is ambiguous, and resolution degrades
// to the suggestion lookup instead of picking one arbitrarily.
type ResolveService struct {
	store CardStore
}

func NewResolveService(store CardStore) *ResolveService {
	return &ResolveService{store: store}
}

// ResolveByName runs the cascade:
//  1. exact cardName equality
//  2. equality with all spaces stripped from both sides
//  3. case-insensitive anchored prefix
//  4. case-insensitive substring
func (s *ResolveService) ResolveByName(ctx context.Context, name string) (*models.Card, error) {
	card, err := s.store.FindOne(ctx, bson.M{"cardName": name})
	if err != nil {
		return nil, fmt.Errorf("resolve exact name: %w", err)
	}
	if card != nil {
		return card, nil
	}

	card, err = s.findSpaceStripped(ctx, name)
	if err != nil {
		return nil, err
	}
	if card != nil {
		return card, nil
	}

	card, ambiguous, err := s.findFuzzy(ctx, prefixPattern(name))
	if err != nil {
		return nil, fmt.Errorf("resolve name prefix: %w", err)
	}
	if card != nil {
		return card, nil
	}

	if !ambiguous {
		card, _, err = s.findFuzzy(ctx, containsPattern(name))
		if err != nil {
			return nil, fmt.Errorf("resolve name substring: %w", err)
		}
		if card != nil {
			return card, nil
		}
	}

	suggestions, err := s.suggestions(ctx, name)
	if err != nil {
		return nil, err
	}
	return nil, &NotFoundError{Query: name, Suggestions: suggestions}
}

// findFuzzy runs one fuzzy stage. It fetches up to two candidates: one
// means an unambiguous win, two means the stage is ambiguous and the
// cascade must degrade to suggestions.
func (s *ResolveService) findFuzzy(ctx context.Context, pattern bson.M) (*models.Card, bool, error) {
	matches, err := s.store.Find(ctx, bson.M{"cardName": pattern}, options.Find().SetLimit(2))
	if err != nil {
		return nil, false, err
	}
	switch len(matches) {
	case 0:
		return nil, false, nil
	case 1:
		return &matches[0], false, nil
	default:
		return nil, true, nil
	}
}

// findSpaceStripped compares the input and the stored names with every
// space removed. Done store-side so spacing differences on either side
// still match without a catalog scan. Stored names are unique, so stripped
// equality cannot be meaningfully ambiguous.
func (s *ResolveService) findSpaceStripped(ctx context.Context, name string) (*models.Card, error) {
	stripped := strings.ReplaceAll(name, " ", "")

	pipeline := []bson.M{
		{"$addFields": bson.M{"cardNameStripped": bson.M{"$replaceAll": bson.M{
			"input":       "$cardName",
			"find":        " ",
			"replacement": "",
		}}}},
		{"$match": bson.M{"cardNameStripped": stripped}},
		{"$limit": 1},
		{"$unset": "cardNameStripped"},
	}

	var cards []models.Card
	if err := s.store.Aggregate(ctx, pipeline, &cards); err != nil {
		return nil, fmt.Errorf("resolve space-stripped name: %w", err)
	}
	if len(cards) == 0 {
		return nil, nil
	}
	return &cards[0], nil
}

// suggestions looks up card names containing the probe token, capped at 5.
func (s *ResolveService) suggestions(ctx context.Context, name string) ([]string, error) {
	probe := suggestionProbe(name)
	if probe == "" {
		return nil, nil
	}

	opts := options.Find().
		SetLimit(maxSuggestions).
		SetProjection(bson.M{"cardName": 1})

	cards, err := s.store.Find(ctx, bson.M{"cardName": containsPattern(probe)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find similar card names: %w", err)
	}

	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.CardName)
	}
	return names, nil
}

// suggestionProbe derives the lookup token: the first whitespace-delimited
// token when the input contains spaces, otherwise the first two characters.
// Characters, not bytes: most card names are CJK.
func suggestionProbe(name string) string {
	if strings.Contains(name, " ") {
		if fields := strings.Fields(name); len(fields) > 0 {
			return fields[0]
		}
	}
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	// reached only for unspaced or all-space input; trims the latter to nothing
	return strings.TrimSpace(string(runes))
}
