// File: internal/data/store.go
package data

import "context"

// RecordStore is the persistent collection of sales records.
//
// Count and Distinct ignore the sort and window of the filter; Find applies
// them. Distinct only accepts text fields and may return values in any order,
// blanks and surrounding whitespace included.
type RecordStore interface {
	Count(ctx context.Context, f Filter) (int64, error)
	Find(ctx context.Context, f Filter) ([]Record, error)
	Distinct(ctx context.Context, field Field, f Filter) ([]string, error)
	BulkInsert(ctx context.Context, records []Record) (int, error)
}
