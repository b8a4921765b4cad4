// File: internal/sheets/client.go
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API for one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

// Config holds configuration for the Google Sheets client
type Config struct {
	ServiceAccountKeyPath string
	SpreadsheetID         string
}

// NewClient authenticates with the service account key file named in cfg.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	credentials, err := os.ReadFile(cfg.ServiceAccountKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}
	return NewClientFromJSON(ctx, credentials, cfg.SpreadsheetID)
}

// NewClientFromJSON authenticates with service account credentials held in memory.
func NewClientFromJSON(ctx context.Context, credentials []byte, spreadsheetID string) (*Client, error) {
	if err := ValidateCredentials(credentials); err != nil {
		return nil, err
	}

	config, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// GetSheetByName returns the sheet titled sheetName.
func (c *Client) GetSheetByName(ctx context.Context, sheetName string) (*sheets.Sheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			return sheet, nil
		}
	}
	return nil, fmt.Errorf("sheet %s not found", sheetName)
}

// EnsureSheet returns the sheet titled sheetName, adding it when missing.
func (c *Client) EnsureSheet(ctx context.Context, sheetName string) (*sheets.Sheet, error) {
	if existing, err := c.GetSheetByName(ctx, sheetName); err == nil {
		return existing, nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: sheetName}}},
		},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create sheet: %w", err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return nil, fmt.Errorf("failed to create sheet %s", sheetName)
	}
	return &sheets.Sheet{Properties: resp.Replies[0].AddSheet.Properties}, nil
}

// ReplaceValues clears the sheet and writes rows starting at A1.
func (c *Client) ReplaceValues(ctx context.Context, sheetName string, rows [][]any) error {
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to clear sheet: %w", err)
	}

	_, err = c.service.Spreadsheets.Values.Update(c.spreadsheetID, sheetName+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to write data: %w", err)
	}
	return nil
}

// FormatHeader makes the first row bold on a grey background and freezes it.
func (c *Client) FormatHeader(ctx context.Context, sheet *sheets.Sheet, numColumns int) error {
	sheetID := sheet.Properties.SheetId

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   int64(numColumns),
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							BackgroundColor: &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9},
							TextFormat:      &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat(backgroundColor,textFormat)",
				},
			},
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        sheetID,
						GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to format header: %w", err)
	}
	return nil
}

// ValidateCredentials checks that credentials look like a service account key.
func ValidateCredentials(credentials []byte) error {
	var creds map[string]any
	if err := json.Unmarshal(credentials, &creds); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	requiredFields := []string{"type", "project_id", "private_key_id", "private_key", "client_email"}
	for _, field := range requiredFields {
		if _, ok := creds[field]; !ok {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	if creds["type"] != "service_account" {
		return fmt.Errorf("invalid credential type: expected service_account, got %v", creds["type"])
	}
	return nil
}
