// File: internal/data/options.go
package data

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// genderOptions is fixed and not derived from the stored records.
var genderOptions = []string{"Male", "Female"}

// FilterOptions lists the values offered by each filter control.
type FilterOptions struct {
	CustomerRegion  []string `json:"customerRegion"`
	Gender          []string `json:"gender"`
	ProductCategory []string `json:"productCategory"`
	Brand           []string `json:"brand"`
	Tags            []string `json:"tags"`
	PaymentMethod   []string `json:"paymentMethod"`
}

// FilterOptionModel derives filter options from the current store contents.
// Nothing is cached.
type FilterOptionModel struct {
	Store RecordStore
}

// Get returns the distinct values of every filterable field. Brands are
// limited to the given categories when any are supplied. Unlike a listing,
// a store failure here is returned to the caller.
func (m FilterOptionModel) Get(ctx context.Context, categories []string) (FilterOptions, error) {
	var opts FilterOptions

	lookups := []struct {
		field  Field
		filter Filter
		dest   *[]string
	}{
		{FieldCustomerRegion, Filter{}, &opts.CustomerRegion},
		{FieldProductCategory, Filter{}, &opts.ProductCategory},
		{FieldTags, Filter{}, &opts.Tags},
		{FieldPaymentMethod, Filter{}, &opts.PaymentMethod},
		{FieldBrand, CategoryFilter(categories), &opts.Brand},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lookups {
		g.Go(func() error {
			values, err := m.Store.Distinct(gctx, l.field, l.filter)
			if err != nil {
				return fmt.Errorf("distinct %s: %w", l.field, err)
			}
			*l.dest = cleanOptions(values)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FilterOptions{}, err
	}

	opts.Gender = slices.Clone(genderOptions)
	return opts, nil
}

// cleanOptions trims, drops blanks and repeats, and sorts ascending.
func cleanOptions(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	slices.Sort(cleaned)
	return slices.Compact(cleaned)
}
