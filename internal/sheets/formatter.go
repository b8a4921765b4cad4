// File: internal/sheets/formatter.go
package sheets

import (
	"fmt"
	"sort"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

// ExportInfo describes who ran an export and with which filters.
type ExportInfo struct {
	ExportedBy string
	Query      string
	Dates      *data.TimeRange
	Total      int64
	ExportedAt time.Time
}

var salesHeader = []any{
	"Date",
	"Customer ID",
	"Customer Name",
	"Phone Number",
	"Gender",
	"Age",
	"Customer Region",
	"Product Category",
	"Brand",
	"Product Name",
	"Tags",
	"Quantity",
	"Price per Unit",
	"Discount %",
	"Total Amount",
	"Final Amount",
	"Payment Method",
	"Order Status",
}

// FormatSalesData lays out sales as sheet rows: a header, one row per sale,
// then summary and export information blocks.
func FormatSalesData(sales []data.Sale, info ExportInfo) [][]any {
	rows := [][]any{salesHeader}

	for _, s := range sales {
		rows = append(rows, []any{
			formatDate(s.Date),
			text(s.CustomerID),
			text(s.CustomerName),
			text(s.PhoneNumber),
			text(s.Gender),
			s.Age,
			text(s.CustomerRegion),
			text(s.ProductCategory),
			text(s.Brand),
			text(s.ProductName),
			text(s.Tags),
			s.Quantity,
			fmt.Sprintf("%.2f", s.PricePerUnit),
			s.DiscountPercentage,
			fmt.Sprintf("%.2f", s.TotalAmount),
			fmt.Sprintf("%.2f", s.FinalAmount),
			text(s.PaymentMethod),
			text(s.OrderStatus),
		})
	}

	if len(sales) > 0 {
		var quantity, revenue float64
		for _, s := range sales {
			quantity += s.Quantity
			revenue += s.FinalAmount
		}

		rows = append(rows,
			[]any{},
			[]any{"Summary"},
			[]any{"Exported Records:", len(sales)},
			[]any{"Matching Records:", info.Total},
			[]any{"Total Items Sold:", quantity},
			[]any{"Total Revenue:", fmt.Sprintf("%.2f", revenue)},
		)
	}

	return append(rows, exportInformation(info)...)
}

// FormatCategorySummary aggregates sales per product category, largest
// revenue first.
func FormatCategorySummary(sales []data.Sale, info ExportInfo) [][]any {
	rows := [][]any{{
		"Product Category",
		"Total Quantity Sold",
		"Total Revenue",
		"Number of Transactions",
		"Average Sale Amount",
	}}

	stats := make(map[string]*CategorySummary)
	for _, s := range sales {
		name := text(s.ProductCategory)
		if name == "" {
			name = "(none)"
		}
		cs, ok := stats[name]
		if !ok {
			cs = &CategorySummary{Category: name}
			stats[name] = cs
		}
		cs.TotalQuantity += s.Quantity
		cs.TotalRevenue += s.FinalAmount
		cs.TransactionCount++
	}

	ordered := make([]*CategorySummary, 0, len(stats))
	for _, cs := range stats {
		ordered = append(ordered, cs)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].TotalRevenue != ordered[j].TotalRevenue {
			return ordered[i].TotalRevenue > ordered[j].TotalRevenue
		}
		return ordered[i].Category < ordered[j].Category
	})

	var grandQuantity, grandRevenue float64
	for _, cs := range ordered {
		rows = append(rows, []any{
			cs.Category,
			cs.TotalQuantity,
			fmt.Sprintf("%.2f", cs.TotalRevenue),
			cs.TransactionCount,
			fmt.Sprintf("%.2f", cs.TotalRevenue/float64(cs.TransactionCount)),
		})
		grandQuantity += cs.TotalQuantity
		grandRevenue += cs.TotalRevenue
	}

	if len(ordered) > 0 {
		rows = append(rows, []any{}, []any{
			"Grand Total",
			grandQuantity,
			fmt.Sprintf("%.2f", grandRevenue),
			len(sales),
			fmt.Sprintf("%.2f", grandRevenue/float64(len(sales))),
		})
	}

	return append(rows, exportInformation(info)...)
}

// CategorySummary holds aggregated statistics for a product category
type CategorySummary struct {
	Category         string
	TotalQuantity    float64
	TotalRevenue     float64
	TransactionCount int
}

// FormatDateRange formats date range for display
func FormatDateRange(dates *data.TimeRange) string {
	if dates == nil {
		return "All Time"
	}
	if dates.ForcesEmpty() {
		return "Empty Range"
	}

	switch {
	case dates.Start != nil && dates.End != nil:
		return fmt.Sprintf("%s to %s", dates.Start.Format("2006-01-02"), dates.End.Format("2006-01-02"))
	case dates.Start != nil:
		return fmt.Sprintf("From %s", dates.Start.Format("2006-01-02"))
	case dates.End != nil:
		return fmt.Sprintf("Until %s", dates.End.Format("2006-01-02"))
	}
	return "All Time"
}

func exportInformation(info ExportInfo) [][]any {
	exportedAt := info.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}
	query := info.Query
	if query == "" {
		query = "(none)"
	}

	return [][]any{
		{},
		{"Export Information"},
		{"Exported By:", info.ExportedBy},
		{"Filters:", query},
		{"Date Range:", FormatDateRange(info.Dates)},
		{"Export Date:", exportedAt.Format("2006-01-02 15:04:05")},
	}
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
