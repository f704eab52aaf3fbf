package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewPageBounds(t *testing.T) {
	tests := []struct {
		name    string
		skip    int64
		limit   int64
		wantErr bool
	}{
		{"defaults are valid", 0, 50, false},
		{"minimum limit", 0, 1, false},
		{"maximum limit", 0, 500, false},
		{"large skip", 100000, 50, false},
		{"negative skip", -1, 50, true},
		{"zero limit", 0, 0, true},
		{"limit above cap", 0, 501, true},
		{"negative limit", 0, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewPage(tt.skip, tt.limit)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.skip, page.Skip)
			assert.Equal(t, tt.limit, page.Limit)
		})
	}
}

func TestContainsPatternEscapesMetacharacters(t *testing.T) {
	pattern := containsPattern("a.b*c(d)")
	assert.Equal(t, `a\.b\*c\(d\)`, pattern["$regex"])
	assert.Equal(t, "i", pattern["$options"])
}

func TestPrefixPatternAnchors(t *testing.T) {
	pattern := prefixPattern("CUBE")
	assert.Equal(t, "^CUBE", pattern["$regex"])
	assert.Equal(t, "i", pattern["$options"])
}

func TestListFilter(t *testing.T) {
	t.Run("no constraints when absent", func(t *testing.T) {
		assert.Equal(t, bson.M{}, listFilter("", nil))
	})

	t.Run("issuer substring", func(t *testing.T) {
		filter := listFilter("Bank A", nil)
		assert.Equal(t, bson.M{"issuer": containsPattern("Bank A")}, filter)
	})

	t.Run("tag set intersection", func(t *testing.T) {
		filter := listFilter("", []string{"travel", "網購"})
		assert.Equal(t, bson.M{"tags": bson.M{"$in": []string{"travel", "網購"}}}, filter)
	})

	t.Run("both are a conjunction", func(t *testing.T) {
		filter := listFilter("玉山", []string{"旅遊"})
		assert.Len(t, filter, 2)
		assert.Contains(t, filter, "issuer")
		assert.Contains(t, filter, "tags")
	})
}

func TestSearchFilterCoversFiveFields(t *testing.T) {
	filter := searchFilter("回饋")

	clauses, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, clauses, 5)

	var fields []string
	for _, clause := range clauses {
		for field := range clause {
			fields = append(fields, field)
		}
	}
	assert.ElementsMatch(t, fields, []string{
		"cardName", "issuer", "tags", "benefits.category", "parsedData.rawContent",
	})

	// every clause is the same case-insensitive literal substring test
	for _, clause := range clauses {
		for _, pattern := range clause {
			assert.Equal(t, containsPattern("回饋"), pattern)
		}
	}
}

func TestNameFilter(t *testing.T) {
	assert.Equal(t, bson.M{"cardName": "CUBE 卡"}, nameFilter("CUBE 卡", true))
	assert.Equal(t, bson.M{"cardName": containsPattern("CUBE")}, nameFilter("CUBE", false))
}
