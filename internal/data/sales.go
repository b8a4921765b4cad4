// Filename: internal/data/sales.go
package data

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// SalesPage is one page of a sales listing. Total counts every matching
// record regardless of the page window.
type SalesPage struct {
	Total int64  `json:"total"`
	Sales []Sale `json:"sales"`
}

// SalesModel runs listing queries against a record store.
type SalesModel struct {
	Store  RecordStore
	Logger *slog.Logger
}

// List is Page for the listing endpoint: a store failure is logged and
// answered with an empty page instead of an error.
func (m SalesModel) List(ctx context.Context, f Filter) SalesPage {
	page, err := m.Page(ctx, f)
	if err != nil {
		m.logger().Error("sales listing degraded to an empty page",
			slog.String("error", err.Error()),
			slog.Int64("page", f.Page),
			slog.Int64("page_size", f.PageSize),
			slog.String("sort", string(f.Sort.Key)),
		)
		return SalesPage{Total: 0, Sales: []Sale{}}
	}
	return page
}

// Page counts the records matching f and fetches the requested page. The two
// reads run concurrently and are not transactionally consistent.
func (m SalesModel) Page(ctx context.Context, f Filter) (SalesPage, error) {
	var (
		total   int64
		records []Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := m.Store.Count(gctx, f)
		if err != nil {
			return fmt.Errorf("count sales records: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		found, err := m.Store.Find(gctx, f)
		if err != nil {
			return fmt.Errorf("find sales records: %w", err)
		}
		records = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return SalesPage{}, err
	}

	if int64(len(records)) > f.Limit() {
		records = records[:f.Limit()]
	}

	sales := make([]Sale, 0, len(records))
	for _, r := range records {
		sales = append(sales, Normalize(r))
	}

	return SalesPage{Total: total, Sales: sales}, nil
}

func (m SalesModel) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
