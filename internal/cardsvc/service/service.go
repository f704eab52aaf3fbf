package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/twcards/card-services/internal/cardsvc/models"
	"github.com/twcards/card-services/internal/comm"
)

// CollectionName is the catalog collection.
const CollectionName = "creditCards"

// CardStore is the document-store contract the engines run against. FindOne
// returns (nil, nil) when no document matches.
type CardStore interface {
	FindOne(ctx context.Context, filter bson.M) (*models.Card, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Card, error)
	Insert(ctx context.Context, card *models.Card) (models.CardID, error)
	Update(ctx context.Context, id models.CardID, set bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id models.CardID) (int64, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, pipeline []bson.M, results interface{}) error
}

// AuditEntry is one row of the mutation audit trail.
type AuditEntry struct {
	Action   string
	CardID   string
	CardName string
	Fields   []string
	At       time.Time
}

// AuditLog records catalog mutations. Best effort: a failed audit write
// never fails the request.
type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// EventPublisher fans catalog change events out to other services.
type EventPublisher interface {
	PublishCardEvent(evt comm.CardEvent) error
}
