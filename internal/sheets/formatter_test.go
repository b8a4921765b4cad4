// File: internal/sheets/formatter_test.go
package sheets

import (
	"strings"
	"testing"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

func testSales() []data.Sale {
	soldOn := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []data.Sale{
		{
			CustomerID:      data.StringPtr("C1"),
			CustomerName:    data.StringPtr("Neha Yadav"),
			ProductCategory: data.StringPtr("Clothing"),
			Brand:           data.StringPtr("Zara"),
			Quantity:        2,
			PricePerUnit:    10.5,
			TotalAmount:     21,
			FinalAmount:     20,
			Date:            &soldOn,
		},
		{
			CustomerName:    data.StringPtr("Arjun Mehta"),
			ProductCategory: data.StringPtr("Electronics"),
			Quantity:        1,
			PricePerUnit:    100,
			TotalAmount:     100,
			FinalAmount:     90,
		},
		{
			CustomerName:    data.StringPtr("Priya Singh"),
			ProductCategory: data.StringPtr("Clothing"),
			Quantity:        3,
			FinalAmount:     30,
		},
	}
}

func TestFormatSalesData(t *testing.T) {
	info := ExportInfo{
		ExportedBy: "ops@example.com",
		Query:      "customerRegion=North",
		Total:      42,
		ExportedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	}
	result := FormatSalesData(testSales(), info)

	if len(result) < 4 {
		t.Fatalf("Expected at least 4 rows (header + 3 data), got %d", len(result))
	}

	headerRow := result[0]
	if len(headerRow) != len(salesHeader) {
		t.Fatalf("Expected %d columns in header, got %d", len(salesHeader), len(headerRow))
	}
	if headerRow[0] != "Date" || headerRow[2] != "Customer Name" {
		t.Errorf("Unexpected header %v", headerRow)
	}

	firstDataRow := result[1]
	if len(firstDataRow) != len(salesHeader) {
		t.Fatalf("Data row has %d columns, header has %d", len(firstDataRow), len(salesHeader))
	}
	if firstDataRow[0] != "2024-01-15" {
		t.Errorf("Expected date 2024-01-15, got %v", firstDataRow[0])
	}
	if firstDataRow[2] != "Neha Yadav" {
		t.Errorf("Expected customer name Neha Yadav, got %v", firstDataRow[2])
	}
	if firstDataRow[12] != "10.50" {
		t.Errorf("Expected price 10.50, got %v", firstDataRow[12])
	}

	secondDataRow := result[2]
	if secondDataRow[0] != "" || secondDataRow[1] != "" {
		t.Errorf("Expected blank cells for absent values, got %v", secondDataRow[:2])
	}

	found := map[string]any{}
	for _, row := range result[4:] {
		if len(row) == 2 {
			found[row[0].(string)] = row[1]
		}
	}
	if found["Exported Records:"] != 3 {
		t.Errorf("Expected 3 exported records, got %v", found["Exported Records:"])
	}
	if found["Matching Records:"] != int64(42) {
		t.Errorf("Expected 42 matching records, got %v", found["Matching Records:"])
	}
	if found["Total Revenue:"] != "140.00" {
		t.Errorf("Expected revenue 140.00, got %v", found["Total Revenue:"])
	}
	if found["Filters:"] != "customerRegion=North" {
		t.Errorf("Expected filters to be recorded, got %v", found["Filters:"])
	}
	if found["Export Date:"] != "2024-02-01 09:00:00" {
		t.Errorf("Unexpected export date %v", found["Export Date:"])
	}
}

func TestFormatSalesDataEmpty(t *testing.T) {
	result := FormatSalesData(nil, ExportInfo{ExportedBy: "ops"})

	for _, row := range result {
		if len(row) > 0 && row[0] == "Summary" {
			t.Fatal("Expected no summary block without records")
		}
	}
	if result[len(result)-3][1] != "(none)" {
		t.Errorf("Expected empty query to render as (none), got %v", result[len(result)-3][1])
	}
}

func TestFormatCategorySummary(t *testing.T) {
	result := FormatCategorySummary(testSales(), ExportInfo{ExportedBy: "ops"})

	if len(result[0]) != 5 {
		t.Fatalf("Expected 5 columns in header, got %d", len(result[0]))
	}

	// Electronics (90) outranks Clothing (50).
	if result[1][0] != "Electronics" || result[2][0] != "Clothing" {
		t.Fatalf("Unexpected category order: %v, %v", result[1][0], result[2][0])
	}
	if result[2][1] != 5.0 {
		t.Errorf("Expected 5 clothing items, got %v", result[2][1])
	}
	if result[2][3] != 2 {
		t.Errorf("Expected 2 clothing transactions, got %v", result[2][3])
	}
	if result[2][4] != "25.00" {
		t.Errorf("Expected clothing average 25.00, got %v", result[2][4])
	}

	grand := result[4]
	if grand[0] != "Grand Total" || grand[2] != "140.00" || grand[3] != 3 {
		t.Errorf("Unexpected grand total row %v", grand)
	}
}

func TestGenerateSheetName(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name     string
		dates    *data.TimeRange
		expected string
	}{
		{name: "No date range", dates: nil, expected: "Sales_Export_2024-05-06_07-08-09"},
		{name: "Full range", dates: &data.TimeRange{Start: &start, End: &end}, expected: "Sales_2024-01-01_to_2024-01-31"},
		{name: "Start only", dates: &data.TimeRange{Start: &start}, expected: "Sales_from_2024-01-01"},
		{name: "End only", dates: &data.TimeRange{End: &end}, expected: "Sales_until_2024-01-31"},
		{
			name:     "Empty range",
			dates:    &data.TimeRange{Start: &end, End: &start, StartOutcome: data.OutcomeForcesEmpty},
			expected: "Sales_Export_2024-05-06_07-08-09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateSheetName(tt.dates, now)
			if result != tt.expected {
				t.Errorf("GenerateSheetName() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dates    *data.TimeRange
		expected string
	}{
		{name: "No range", expected: "All Time"},
		{name: "Both dates provided", dates: &data.TimeRange{Start: &start, End: &end}, expected: "2024-01-01 to 2024-01-31"},
		{name: "Only start date", dates: &data.TimeRange{Start: &start}, expected: "From 2024-01-01"},
		{name: "Only end date", dates: &data.TimeRange{End: &end}, expected: "Until 2024-01-31"},
		{name: "Forced empty", dates: &data.TimeRange{StartOutcome: data.OutcomeForcesEmpty}, expected: "Empty Range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDateRange(tt.dates)
			if result != tt.expected {
				t.Errorf("FormatDateRange() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	valid := `{"type":"service_account","project_id":"p","private_key_id":"k","private_key":"pk","client_email":"e@p.iam.gserviceaccount.com"}`

	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{name: "Valid", json: valid},
		{name: "Not JSON", json: "{", wantErr: "invalid JSON"},
		{name: "Missing Field", json: `{"type":"service_account"}`, wantErr: "missing required field"},
		{name: "Wrong Type", json: strings.Replace(valid, "service_account", "authorized_user", 1), wantErr: "invalid credential type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials([]byte(tt.json))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
