package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardIDRoundTrip(t *testing.T) {
	id := NewCardID()
	require.False(t, id.IsZero())

	parsed, err := ParseCardID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Equal(t, id.String(), parsed.String())
}

func TestParseCardIDRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "xyz", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseCardID(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestValidCardID(t *testing.T) {
	assert.True(t, ValidCardID(NewCardID().String()))
	assert.False(t, ValidCardID("not-an-id"))
	assert.False(t, ValidCardID(""))
}

func TestCardIDJSON(t *testing.T) {
	id := NewCardID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(data))

	var decoded CardID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestCardIDJSONEmptyString(t *testing.T) {
	var id CardID
	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.True(t, id.IsZero())
}

func TestCardUpdateFields(t *testing.T) {
	note := "updated"
	tags := []string{"旅遊"}

	upd := CardUpdate{Note: &note, Tags: &tags}
	set := upd.Fields()

	assert.Len(t, set, 2)
	assert.Equal(t, "updated", set["note"])
	assert.Equal(t, tags, set["tags"])

	assert.ElementsMatch(t, []string{"note", "tags"}, upd.FieldNames())
	assert.Empty(t, CardUpdate{}.Fields())
}
