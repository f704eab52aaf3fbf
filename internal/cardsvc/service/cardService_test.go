package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/twcards/card-services/internal/cardsvc/models"
	"github.com/twcards/card-services/internal/comm"
)

type fakeAudit struct {
	entries []AuditEntry
}

func (f *fakeAudit) Record(_ context.Context, entry AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeEvents struct {
	published []comm.CardEvent
}

func (f *fakeEvents) PublishCardEvent(evt comm.CardEvent) error {
	f.published = append(f.published, evt)
	return nil
}

func strPtr(s string) *string { return &s }

func TestGetRejectsMalformedID(t *testing.T) {
	store := &fakeStore{}
	svc := NewCardService(store, nil, nil)

	_, err := svc.Get(context.Background(), "not-an-id")
	require.ErrorIs(t, err, ErrBadID)

	// a malformed id never reaches the store
	assert.Empty(t, store.findOneFilters)
}

func TestGetNotFound(t *testing.T) {
	id := models.NewCardID().String()
	svc := NewCardService(&fakeStore{}, nil, nil)

	_, err := svc.Get(context.Background(), id)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, id, nf.Query)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	store := &fakeStore{
		findOneFn: func(filter bson.M) (*models.Card, error) {
			return &models.Card{CardName: "CUBE 卡"}, nil
		},
	}
	svc := NewCardService(store, nil, nil)

	_, err := svc.Create(context.Background(), &models.Card{CardName: "CUBE 卡"})
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestCreateAssignsDefaultsAndID(t *testing.T) {
	store := &fakeStore{}
	audit := &fakeAudit{}
	events := &fakeEvents{}
	svc := NewCardService(store, audit, events)

	card, err := svc.Create(context.Background(), &models.Card{CardName: "台新 Richart 卡", Issuer: "台新"})
	require.NoError(t, err)

	assert.False(t, card.ID.IsZero())
	assert.Equal(t, "*", card.Note)
	assert.Equal(t, "markdown", card.SourceType)
	assert.False(t, card.CreatedAt.IsZero())
	assert.Equal(t, card.CreatedAt, card.UpdatedAt)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "create", audit.entries[0].Action)

	require.Len(t, events.published, 1)
	assert.Equal(t, comm.CardCreated, events.published[0].Type)
	assert.Equal(t, "台新 Richart 卡", events.published[0].CardName)
}

func TestUpdateRejectsEmptyFieldSet(t *testing.T) {
	store := &fakeStore{}
	svc := NewCardService(store, nil, nil)

	_, err := svc.Update(context.Background(), models.NewCardID().String(), models.CardUpdate{})
	require.ErrorIs(t, err, ErrNoChange)

	// rejected before touching the store
	assert.Empty(t, store.updateSets)
}

func TestUpdateRejectsMalformedID(t *testing.T) {
	svc := NewCardService(&fakeStore{}, nil, nil)

	_, err := svc.Update(context.Background(), "zzz", models.CardUpdate{Note: strPtr("new")})
	require.ErrorIs(t, err, ErrBadID)
}

func TestUpdateDistinguishesMissingFromUnchanged(t *testing.T) {
	t.Run("no matching record", func(t *testing.T) {
		store := &fakeStore{
			updateFn: func(id models.CardID, set bson.M) (int64, int64, error) {
				return 0, 0, nil
			},
		}
		svc := NewCardService(store, nil, nil)

		_, err := svc.Update(context.Background(), models.NewCardID().String(),
			models.CardUpdate{Note: strPtr("x")})

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("record matched but nothing changed", func(t *testing.T) {
		store := &fakeStore{
			updateFn: func(id models.CardID, set bson.M) (int64, int64, error) {
				return 1, 0, nil
			},
		}
		svc := NewCardService(store, nil, nil)

		_, err := svc.Update(context.Background(), models.NewCardID().String(),
			models.CardUpdate{Note: strPtr("x")})
		require.ErrorIs(t, err, ErrNoChange)
	})
}

func TestUpdateAppliesSuppliedFieldsOnly(t *testing.T) {
	stored := models.Card{CardName: "玉山 UBear", Issuer: "玉山", Note: "updated"}
	store := &fakeStore{
		findOneFn: func(filter bson.M) (*models.Card, error) {
			c := stored
			return &c, nil
		},
	}
	audit := &fakeAudit{}
	svc := NewCardService(store, audit, nil)

	card, err := svc.Update(context.Background(), models.NewCardID().String(),
		models.CardUpdate{Note: strPtr("updated"), Tags: &[]string{"網購"}})
	require.NoError(t, err)
	assert.Equal(t, "updated", card.Note)

	require.Len(t, store.updateSets, 1)
	set := store.updateSets[0]
	assert.Contains(t, set, "note")
	assert.Contains(t, set, "tags")
	assert.Contains(t, set, "updatedAt")
	assert.NotContains(t, set, "cardName")
	assert.NotContains(t, set, "issuer")

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "update", audit.entries[0].Action)
	assert.ElementsMatch(t, []string{"note", "tags"}, audit.entries[0].Fields)
}

func TestDeleteNotFound(t *testing.T) {
	store := &fakeStore{
		deleteFn: func(id models.CardID) (int64, error) {
			return 0, nil
		},
	}
	svc := NewCardService(store, nil, nil)

	err := svc.Delete(context.Background(), models.NewCardID().String())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeletePublishesEvent(t *testing.T) {
	events := &fakeEvents{}
	svc := NewCardService(&fakeStore{}, nil, events)

	id := models.NewCardID().String()
	require.NoError(t, svc.Delete(context.Background(), id))

	require.Len(t, events.published, 1)
	assert.Equal(t, comm.CardDeleted, events.published[0].Type)
	assert.Equal(t, id, events.published[0].CardID)
}

func TestDeleteRejectsMalformedID(t *testing.T) {
	svc := NewCardService(&fakeStore{}, nil, nil)
	require.ErrorIs(t, svc.Delete(context.Background(), "bad"), ErrBadID)
}
