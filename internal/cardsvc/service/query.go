package service

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Page is a validated pagination window.
type Page struct {
	Skip  int64
	Limit int64
}

func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// NewPage validates pagination bounds. Out-of-range values are rejected,
// not clamped.
func NewPage(skip, limit int64) (Page, error) {
	if skip < 0 {
		return Page{}, fmt.Errorf("%w: skip must be >= 0, got %d", ErrBadQuery, skip)
	}
	if limit < 1 || limit > MaxLimit {
		return Page{}, fmt.Errorf("%w: limit must be between 1 and %d, got %d", ErrBadQuery, MaxLimit, limit)
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// containsPattern matches the value as a case-insensitive literal
// substring. Metacharacters are escaped so user input is never interpreted
// as a pattern expression.
func containsPattern(value string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
}

// prefixPattern anchors the literal value at the start of the field.
func prefixPattern(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value), "$options": "i"}
}

// listFilter is the AND of the optional issuer and tag filters. Absent
// filters impose no constraint.
func listFilter(issuer string, tags []string) bson.M {
	query := bson.M{}
	if issuer != "" {
		query["issuer"] = containsPattern(issuer)
	}
	if len(tags) > 0 {
		query["tags"] = bson.M{"$in": tags}
	}
	return query
}

// searchFilter is the OR of case-insensitive substring tests over the five
// searchable fields.
func searchFilter(keyword string) bson.M {
	pattern := containsPattern(keyword)
	return bson.M{
		"$or": []bson.M{
			{"cardName": pattern},
			{"issuer": pattern},
			{"tags": pattern},
			{"benefits.category": pattern},
			{"parsedData.rawContent": pattern},
		},
	}
}

// nameFilter is equality when exact, else case-insensitive substring.
func nameFilter(name string, exact bool) bson.M {
	if exact {
		return bson.M{"cardName": name}
	}
	return bson.M{"cardName": containsPattern(name)}
}
