// File: internal/store/mongo/mongo_test.go
package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

func TestFilterDocumentEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, filterDocument(data.BuildFilter(data.FilterParams{})))
}

func TestFilterDocumentMemberships(t *testing.T) {
	doc := filterDocument(data.BuildFilter(data.FilterParams{
		CustomerRegion: []string{"North", " North", "East"},
		Tags:           []string{"casual"},
	}))

	assert.Equal(t, bson.M{
		"customerRegion": bson.M{"$in": []string{"North", "East"}},
		"tags":           bson.M{"$in": []string{"casual"}},
	}, doc)
}

func TestFilterDocumentSearch(t *testing.T) {
	doc := filterDocument(data.BuildFilter(data.FilterParams{Search: "a+b"}))

	or, ok := doc["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, len(data.SearchFields))

	for i, field := range data.SearchFields {
		assert.Equal(t, bson.M{
			string(field): primitive.Regex{Pattern: `a\+b`, Options: "i"},
		}, or[i])
	}
}

func TestFilterDocumentRanges(t *testing.T) {
	t.Run("Age", func(t *testing.T) {
		doc := filterDocument(data.BuildFilter(data.FilterParams{AgeMin: "18"}))
		assert.Equal(t, bson.M{"age": bson.M{"$gte": 18.0}}, doc)
	})

	t.Run("Swapped Age", func(t *testing.T) {
		doc := filterDocument(data.BuildFilter(data.FilterParams{AgeMin: "60", AgeMax: "20"}))
		assert.Equal(t, bson.M{"age": bson.M{"$gte": 999.0, "$lte": 0.0}}, doc)
	})

	t.Run("Date", func(t *testing.T) {
		doc := filterDocument(data.BuildFilter(data.FilterParams{DateStart: "2024-01-01", DateEnd: "2024-01-31"}))
		bounds, ok := doc["date"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), bounds["$gte"])
		assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.Local), bounds["$lte"])
	})
}

func TestFindOptions(t *testing.T) {
	tests := []struct {
		name     string
		params   data.FilterParams
		wantSort bson.D
		wantSkip *int64
		wantLim  int64
	}{
		{
			name:     "Defaults",
			wantSort: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
			wantLim:  10,
		},
		{
			name:     "Customer Name Page Three",
			params:   data.FilterParams{SortBy: "customerName", Page: "3", PageSize: "25"},
			wantSort: bson.D{{Key: "customerName", Value: 1}, {Key: "_id", Value: 1}},
			wantSkip: ptr(int64(50)),
			wantLim:  25,
		},
		{
			name:     "Quantity",
			params:   data.FilterParams{SortBy: "quantity"},
			wantSort: bson.D{{Key: "quantity", Value: -1}, {Key: "_id", Value: -1}},
			wantLim:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := findOptions(data.BuildFilter(tt.params))
			assert.Equal(t, tt.wantSort, opts.Sort)
			assert.Equal(t, tt.wantSkip, opts.Skip)
			require.NotNil(t, opts.Limit)
			assert.Equal(t, tt.wantLim, *opts.Limit)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	when := time.Date(2023, 5, 1, 9, 0, 0, 0, time.UTC)

	rec := data.Record{
		ID:           id.Hex(),
		CustomerName: data.StringPtr("Priya"),
		Age:          data.FloatPtr(41),
		Date:         &when,
	}

	doc := fromRecord(rec)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, rec, doc.record())

	fresh := fromRecord(data.Record{ID: "not-an-object-id"})
	assert.True(t, fresh.ID.IsZero())
	assert.Empty(t, fresh.record().ID)
}

func TestDocumentOmitsAbsentFields(t *testing.T) {
	raw, err := bson.Marshal(fromRecord(data.Record{Brand: data.StringPtr("Lego")}))
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, bson.M{"brand": "Lego"}, decoded)
}

func ptr[T any](v T) *T {
	return &v
}
