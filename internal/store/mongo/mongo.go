// File: internal/store/mongo/mongo.go

// Package mongo stores sales records as documents in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

// Config selects the collection holding the records.
type Config struct {
	URI            string
	Database       string
	Collection     string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

// Store is a RecordStore backed by a MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New wraps an existing collection.
func New(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

// Open connects to MongoDB and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.ConnectTimeout > 0 {
		clientOptions.SetConnectTimeout(cfg.ConnectTimeout)
		clientOptions.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to mongodb: %w", data.ErrStoreUnavailable, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping mongodb: %w", data.ErrStoreUnavailable, err)
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects the client opened by Open.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes used by the listing and its filters.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: string(data.FieldDate), Value: -1}}},
		{Keys: bson.D{{Key: string(data.FieldCustomerRegion), Value: 1}}},
		{Keys: bson.D{{Key: string(data.FieldProductCategory), Value: 1}}},
		{Keys: bson.D{{Key: string(data.FieldCustomerName), Value: 1}}},
	}
	if _, err := s.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// ----------------------------------------------------------------------
//
//	RecordStore
//
// ----------------------------------------------------------------------

// Count returns the number of documents matching f.
func (s *Store) Count(ctx context.Context, f data.Filter) (int64, error) {
	n, err := s.collection.CountDocuments(ctx, filterDocument(f))
	if err != nil {
		return 0, fmt.Errorf("count sales records: %w", err)
	}
	return n, nil
}

// Find returns the sorted page of documents selected by f.
func (s *Store) Find(ctx context.Context, f data.Filter) ([]data.Record, error) {
	cursor, err := s.collection.Find(ctx, filterDocument(f), findOptions(f))
	if err != nil {
		return nil, fmt.Errorf("find sales records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sales records: %w", err)
	}

	records := make([]data.Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.record())
	}
	return records, nil
}

// Distinct returns the distinct string values of a text field. Values of
// other BSON types are skipped.
func (s *Store) Distinct(ctx context.Context, field data.Field, f data.Filter) ([]string, error) {
	if !field.IsText() {
		return nil, fmt.Errorf("%w: %s", data.ErrUnknownField, field)
	}

	raw, err := s.collection.Distinct(ctx, string(field), filterDocument(f))
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			values = append(values, str)
		}
	}
	return values, nil
}

// BulkInsert inserts the records unordered, so one rejected document does
// not stop the rest. It reports how many were stored.
func (s *Store) BulkInsert(ctx context.Context, records []data.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(records))
	for _, r := range records {
		docs = append(docs, fromRecord(r))
	}

	res, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			inserted = len(records) - len(bulkErr.WriteErrors)
		}
		return inserted, fmt.Errorf("insert sales records: %w", err)
	}
	return inserted, nil
}

// ----------------------------------------------------------------------
//
//	Query translation
//
// ----------------------------------------------------------------------

// filterDocument translates the constraints of f into a query document.
// Constraints on different fields are AND-ed by the top-level document.
func filterDocument(f data.Filter) bson.M {
	doc := bson.M{}

	for _, m := range f.Memberships {
		doc[string(m.Field)] = bson.M{"$in": m.Values}
	}

	if f.Search != nil {
		anyOf := make(bson.A, 0, len(f.Search.Fields))
		for _, field := range f.Search.Fields {
			anyOf = append(anyOf, bson.M{
				string(field): primitive.Regex{Pattern: f.Search.Pattern, Options: "i"},
			})
		}
		doc["$or"] = anyOf
	}

	if f.Age != nil {
		if bounds := rangeDocument(f.Age.Min, f.Age.Max); len(bounds) > 0 {
			doc[string(data.FieldAge)] = bounds
		}
	}

	if f.Date != nil {
		if bounds := rangeDocument(f.Date.Start, f.Date.End); len(bounds) > 0 {
			doc[string(data.FieldDate)] = bounds
		}
	}

	return doc
}

func rangeDocument[T any](lo, hi *T) bson.M {
	bounds := bson.M{}
	if lo != nil {
		bounds["$gte"] = *lo
	}
	if hi != nil {
		bounds["$lte"] = *hi
	}
	return bounds
}

func findOptions(f data.Filter) *options.FindOptions {
	direction := 1
	if f.Sort.Descending {
		direction = -1
	}

	opts := options.Find().SetSort(bson.D{
		{Key: string(f.Sort.Field), Value: direction},
		{Key: "_id", Value: direction},
	})
	if f.Offset() > 0 {
		opts.SetSkip(f.Offset())
	}
	if f.Limit() > 0 {
		opts.SetLimit(f.Limit())
	}
	return opts
}
