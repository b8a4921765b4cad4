// File: internal/ingest/verify.go
package ingest

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

const sampleSize = 5

// Summary describes what a store holds after an import.
type Summary struct {
	Total           int64       `json:"total"`
	Samples         []data.Sale `json:"samples"`
	UniqueCustomers int         `json:"unique_customers"`
	UniqueProducts  int         `json:"unique_products"`
}

// Verify gathers a Summary of the store. Samples are the most recent records.
func Verify(ctx context.Context, store data.RecordStore) (Summary, error) {
	var (
		summary Summary
		records []data.Record
	)
	all := data.Filter{}
	recent := data.BuildFilter(data.FilterParams{PageSize: fmt.Sprint(sampleSize)})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := store.Count(gctx, all)
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}
		summary.Total = n
		return nil
	})
	g.Go(func() error {
		found, err := store.Find(gctx, recent)
		if err != nil {
			return fmt.Errorf("sample records: %w", err)
		}
		records = found
		return nil
	})
	g.Go(func() error {
		n, err := countDistinct(gctx, store, data.FieldCustomerName)
		summary.UniqueCustomers = n
		return err
	})
	g.Go(func() error {
		n, err := countDistinct(gctx, store, data.FieldProductName)
		summary.UniqueProducts = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary.Samples = make([]data.Sale, 0, len(records))
	for _, r := range records {
		summary.Samples = append(summary.Samples, data.Normalize(r))
	}
	return summary, nil
}

func countDistinct(ctx context.Context, store data.RecordStore, field data.Field) (int, error) {
	values, err := store.Distinct(ctx, field, data.Filter{})
	if err != nil {
		return 0, fmt.Errorf("distinct %s: %w", field, err)
	}

	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			seen[v] = true
		}
	}
	return len(seen), nil
}
