// File: internal/sheets/service.go
package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

// Service writes sales listings to Google Sheets.
type Service struct {
	client *Client
}

// NewService creates a new sheets service
func NewService(client *Client) *Service {
	return &Service{
		client: client,
	}
}

// ExportSales replaces the contents of sheetName with sales and a summary
// block. It returns the number of records written.
func (s *Service) ExportSales(ctx context.Context, sheetName string, sales []data.Sale, info ExportInfo) (int, error) {
	sheet, err := s.client.EnsureSheet(ctx, sheetName)
	if err != nil {
		return 0, err
	}

	rows := FormatSalesData(sales, info)
	if err := s.client.ReplaceValues(ctx, sheetName, rows); err != nil {
		return 0, err
	}
	if err := s.client.FormatHeader(ctx, sheet, len(rows[0])); err != nil {
		return 0, err
	}
	return len(sales), nil
}

// ExportCategorySummary writes per-category totals of sales to sheetName.
func (s *Service) ExportCategorySummary(ctx context.Context, sheetName string, sales []data.Sale, info ExportInfo) error {
	sheet, err := s.client.EnsureSheet(ctx, sheetName)
	if err != nil {
		return err
	}

	rows := FormatCategorySummary(sales, info)
	if err := s.client.ReplaceValues(ctx, sheetName, rows); err != nil {
		return err
	}
	return s.client.FormatHeader(ctx, sheet, len(rows[0]))
}

// GenerateSheetName names an export after its date range, or after now when
// the range is open.
func GenerateSheetName(dates *data.TimeRange, now time.Time) string {
	if dates == nil || dates.ForcesEmpty() {
		return fmt.Sprintf("Sales_Export_%s", now.Format("2006-01-02_15-04-05"))
	}

	switch {
	case dates.Start != nil && dates.End != nil:
		return fmt.Sprintf("Sales_%s_to_%s", dates.Start.Format("2006-01-02"), dates.End.Format("2006-01-02"))
	case dates.Start != nil:
		return fmt.Sprintf("Sales_from_%s", dates.Start.Format("2006-01-02"))
	case dates.End != nil:
		return fmt.Sprintf("Sales_until_%s", dates.End.Format("2006-01-02"))
	}
	return fmt.Sprintf("Sales_Export_%s", now.Format("2006-01-02_15-04-05"))
}
