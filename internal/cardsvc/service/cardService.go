package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	log "github.com/sirupsen/logrus"

	"github.com/twcards/card-services/internal/cardsvc/models"
	"github.com/twcards/card-services/internal/comm"
)

// CardService owns the catalog mutation invariants: name uniqueness on
// create, merge-only partial updates, delete by id. Audit and event
// fan-out are best effort.
type CardService struct {
	store  CardStore
	audit  AuditLog       // may be nil
	events EventPublisher // may be nil
}

func NewCardService(store CardStore, audit AuditLog, events EventPublisher) *CardService {
	return &CardService{
		store:  store,
		audit:  audit,
		events: events,
	}
}

// Get fetches one card by identifier.
func (s *CardService) Get(ctx context.Context, id string) (*models.Card, error) {
	cid, err := models.ParseCardID(id)
	if err != nil {
		return nil, ErrBadID
	}

	card, err := s.store.FindOne(ctx, bson.M{"_id": cid})
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	if card == nil {
		return nil, &NotFoundError{Query: id}
	}
	return card, nil
}

// Create inserts a new card. The duplicate pre-check is exact-name only and
// exists for the friendlier error; the check-then-insert pair is not
// atomic, so the unique cardName index catches the race loser and that
// error is mapped to ErrDuplicateName as well.
func (s *CardService) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	existing, err := s.store.FindOne(ctx, bson.M{"cardName": card.CardName})
	if err != nil {
		return nil, fmt.Errorf("check card name: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now
	if card.Note == "" {
		card.Note = "*"
	}
	if card.SourceType == "" {
		card.SourceType = "markdown"
	}

	id, err := s.store.Insert(ctx, card)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("insert card: %w", err)
	}
	card.ID = id

	s.recordAudit(ctx, "create", card.ID.String(), card.CardName, nil)
	s.publish(comm.CardCreated, card.ID.String(), card.CardName)

	return card, nil
}

// Update applies the supplied fields only; unset fields stay untouched.
// A missing record and an ineffective update are distinct outcomes.
func (s *CardService) Update(ctx context.Context, id string, upd models.CardUpdate) (*models.Card, error) {
	cid, err := models.ParseCardID(id)
	if err != nil {
		return nil, ErrBadID
	}

	set := upd.Fields()
	if len(set) == 0 {
		return nil, ErrNoChange
	}
	set["updatedAt"] = time.Now().UTC()

	matched, modified, err := s.store.Update(ctx, cid, set)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("update card: %w", err)
	}
	if matched == 0 {
		return nil, &NotFoundError{Query: id}
	}
	if modified == 0 {
		return nil, ErrNoChange
	}

	card, err := s.store.FindOne(ctx, bson.M{"_id": cid})
	if err != nil {
		return nil, fmt.Errorf("reload card: %w", err)
	}
	if card == nil {
		return nil, &NotFoundError{Query: id}
	}

	s.recordAudit(ctx, "update", id, card.CardName, upd.FieldNames())
	s.publish(comm.CardUpdated, id, card.CardName)

	return card, nil
}

// Delete removes one card by identifier.
func (s *CardService) Delete(ctx context.Context, id string) error {
	cid, err := models.ParseCardID(id)
	if err != nil {
		return ErrBadID
	}

	deleted, err := s.store.Delete(ctx, cid)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if deleted == 0 {
		return &NotFoundError{Query: id}
	}

	s.recordAudit(ctx, "delete", id, "", nil)
	s.publish(comm.CardDeleted, id, "")

	return nil
}

func (s *CardService) recordAudit(ctx context.Context, action, id, name string, fields []string) {
	if s.audit == nil {
		return
	}
	entry := AuditEntry{
		Action:   action,
		CardID:   id,
		CardName: name,
		Fields:   fields,
		At:       time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		log.Warnf("audit record failed for card %s: %v", id, err)
	}
}

func (s *CardService) publish(eventType, id, name string) {
	if s.events == nil {
		return
	}
	evt := comm.CardEvent{
		Type:     eventType,
		CardID:   id,
		CardName: name,
		At:       time.Now().UTC(),
	}
	if err := s.events.PublishCardEvent(evt); err != nil {
		log.Warnf("publish %s event for card %s failed: %v", eventType, id, err)
	}
}
