// File: internal/store/memory/memory.go

// Package memory is a RecordStore held in process memory. It follows the
// document store's semantics, including how absent values sort and match.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

type entry struct {
	seq    int64
	record data.Record
}

// Store keeps records in insertion order.
type Store struct {
	mu      sync.RWMutex
	entries []entry
	nextSeq int64
}

// New creates an empty store.
func New() *Store {
	return &Store{nextSeq: 1}
}

// BulkInsert appends the records and assigns each an identity.
func (s *Store) BulkInsert(ctx context.Context, records []data.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		r.ID = strconv.FormatInt(s.nextSeq, 10)
		s.entries = append(s.entries, entry{seq: s.nextSeq, record: r})
		s.nextSeq++
	}
	return len(records), nil
}

// Count returns the number of records matching f.
func (s *Store) Count(ctx context.Context, f data.Filter) (int64, error) {
	matched, err := s.match(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// Find returns the page of matching records selected by f.
func (s *Store) Find(ctx context.Context, f data.Filter) ([]data.Record, error) {
	matched, err := s.match(ctx, f)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(matched, func(a, b entry) int {
		c := comparePrimary(a.record, b.record, f.Sort.Field)
		if c == 0 {
			c = cmp.Compare(a.seq, b.seq)
		}
		if f.Sort.Descending {
			return -c
		}
		return c
	})

	offset, limit := f.Offset(), f.Limit()
	if offset < 0 || offset >= int64(len(matched)) || limit <= 0 {
		return []data.Record{}, nil
	}
	end := min(offset+limit, int64(len(matched)))

	page := make([]data.Record, 0, end-offset)
	for _, e := range matched[offset:end] {
		page = append(page, e.record)
	}
	return page, nil
}

// Distinct returns the distinct values of a text field over the matching records.
func (s *Store) Distinct(ctx context.Context, field data.Field, f data.Filter) ([]string, error) {
	if !field.IsText() {
		return nil, fmt.Errorf("%w: %s", data.ErrUnknownField, field)
	}
	matched, err := s.match(ctx, f)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	values := []string{}
	for _, e := range matched {
		v := e.record.Text(field)
		if v == nil || seen[*v] {
			continue
		}
		seen[*v] = true
		values = append(values, *v)
	}
	return values, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) match(ctx context.Context, f data.Filter) ([]entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pred, err := compile(f)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []entry{}
	for _, e := range s.entries {
		if pred(&e.record) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

type predicate func(r *data.Record) bool

func compile(f data.Filter) (predicate, error) {
	var preds []predicate

	for _, m := range f.Memberships {
		field, allowed := m.Field, m.Values
		preds = append(preds, func(r *data.Record) bool {
			v := r.Text(field)
			return v != nil && slices.Contains(allowed, *v)
		})
	}

	if f.Search != nil {
		rx, err := regexp.Compile("(?i)" + f.Search.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile search pattern: %w", err)
		}
		fields := f.Search.Fields
		preds = append(preds, func(r *data.Record) bool {
			for _, field := range fields {
				if v := r.Text(field); v != nil && rx.MatchString(*v) {
					return true
				}
			}
			return false
		})
	}

	if f.Age != nil {
		lo, hi := f.Age.Min, f.Age.Max
		preds = append(preds, func(r *data.Record) bool {
			if r.Age == nil {
				return false
			}
			return (lo == nil || *r.Age >= *lo) && (hi == nil || *r.Age <= *hi)
		})
	}

	if f.Date != nil {
		start, end := f.Date.Start, f.Date.End
		preds = append(preds, func(r *data.Record) bool {
			if r.Date == nil {
				return false
			}
			return (start == nil || !r.Date.Before(*start)) && (end == nil || !r.Date.After(*end))
		})
	}

	return func(r *data.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}, nil
}

// comparePrimary orders two records by a sort field. Absent values sort
// before present ones.
func comparePrimary(a, b data.Record, field data.Field) int {
	switch field {
	case data.FieldDate:
		return compareNullable(a.Date, b.Date, func(x, y time.Time) int { return x.Compare(y) })
	case data.FieldQuantity:
		return compareNullable(a.Quantity, b.Quantity, cmp.Compare[float64])
	case data.FieldAge:
		return compareNullable(a.Age, b.Age, cmp.Compare[float64])
	default:
		return compareNullable(a.Text(field), b.Text(field), cmp.Compare[string])
	}
}

func compareNullable[T any](a, b *T, compare func(x, y T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return compare(*a, *b)
}
