package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CardID is the opaque catalog identifier. Callers only ever see the hex
// string form; the backing store representation stays inside this type.
type CardID struct {
	oid primitive.ObjectID
}

func NewCardID() CardID {
	return CardID{oid: primitive.NewObjectID()}
}

// ParseCardID validates and parses the canonical hex form.
func ParseCardID(s string) (CardID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return CardID{}, fmt.Errorf("invalid card id %q: %w", s, err)
	}
	return CardID{oid: oid}, nil
}

// ValidCardID reports whether s is a well-formed identifier. Validity is
// independent of existence.
func ValidCardID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

func (id CardID) String() string {
	return id.oid.Hex()
}

// IsZero satisfies the driver Zeroer interface so omitempty works on _id.
func (id CardID) IsZero() bool {
	return id.oid.IsZero()
}

func (id CardID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.oid)
}

func (id *CardID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.UnmarshalValue(t, data, &id.oid)
}

func (id CardID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.oid.Hex())
}

func (id *CardID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*id = CardID{}
		return nil
	}
	parsed, err := ParseCardID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
