// Command export writes a filtered sales listing to a Google Sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/env"
	"github.com/Pedro-J-Kukul/salesrecords/internal/sheets"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store"
	"github.com/Pedro-J-Kukul/salesrecords/internal/validator"
)

const exportPageSize = 100

type config struct {
	query         string
	sheet         string
	spreadsheetID string
	credentials   string
	maxRecords    int
	exportedBy    string
	store         store.Config
}

// exporter is the part of sheets.Service used here.
type exporter interface {
	ExportSales(ctx context.Context, sheetName string, sales []data.Sale, info sheets.ExportInfo) (int, error)
	ExportCategorySummary(ctx context.Context, sheetName string, sales []data.Sale, info sheets.ExportInfo) error
}

func main() {
	if _, err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "reading .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := store.Open(ctx, cfg.store)
	if err != nil {
		logger.Error("opening record store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	client, err := sheets.NewClient(ctx, sheets.Config{
		ServiceAccountKeyPath: cfg.credentials,
		SpreadsheetID:         cfg.spreadsheetID,
	})
	if err != nil {
		logger.Error("connecting to Google Sheets", "error", err)
		os.Exit(1)
	}

	models := data.NewModels(st, logger)
	if err := run(ctx, cfg, models.Sales, sheets.NewService(client), logger, time.Now()); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (config, error) {
	var cfg config

	fs.StringVar(&cfg.query, "query", "", "Listing query string, as sent to GET /records")
	fs.StringVar(&cfg.sheet, "sheet", "", "Target sheet name (derived from the date range when empty)")
	fs.StringVar(&cfg.spreadsheetID, "spreadsheet-id", env.String("GOOGLE_SPREADSHEET_ID", ""), "Google spreadsheet id")
	fs.StringVar(&cfg.credentials, "credentials", env.String("GOOGLE_APPLICATION_CREDENTIALS", ""), "Service account key file")
	fs.IntVar(&cfg.maxRecords, "max-records", 10000, "Maximum number of records to export")
	fs.StringVar(&cfg.exportedBy, "exported-by", env.String("USER", "sales-export"), "Name recorded in the export information")
	store.BindFlags(fs, &cfg.store)

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := validator.New()
	v.Check(cfg.spreadsheetID != "", "spreadsheet-id", "must be provided")
	v.Check(cfg.credentials != "", "credentials", "must be provided")
	v.Check(cfg.maxRecords > 0, "max-records", "must be greater than zero")
	_, err := url.ParseQuery(cfg.query)
	v.Check(err == nil, "query", "must be a valid query string")
	store.ValidateConfig(v, cfg.store)
	if !v.IsEmpty() {
		return config{}, fmt.Errorf("invalid configuration: %v", v.Errors)
	}

	return cfg, nil
}

func run(ctx context.Context, cfg config, sales data.SalesModel, out exporter, logger *slog.Logger, now time.Time) error {
	qs, err := url.ParseQuery(cfg.query)
	if err != nil {
		return err
	}
	filter := data.BuildFilter(data.ParseFilterParams(qs))

	records, total, err := collectSales(ctx, sales, filter, cfg.maxRecords)
	if err != nil {
		// leave the sheet untouched
		return fmt.Errorf("collect sales: %w", err)
	}
	logger.Info("collected sales", "exported", len(records), "matching", total)

	sheetName := cfg.sheet
	if sheetName == "" {
		sheetName = sheets.GenerateSheetName(filter.Date, now)
	}
	info := sheets.ExportInfo{
		ExportedBy: cfg.exportedBy,
		Query:      cfg.query,
		Dates:      filter.Date,
		Total:      total,
		ExportedAt: now,
	}

	n, err := out.ExportSales(ctx, sheetName, records, info)
	if err != nil {
		return fmt.Errorf("export sales: %w", err)
	}
	if err := out.ExportCategorySummary(ctx, sheetName+"_Summary", records, info); err != nil {
		return fmt.Errorf("export category summary: %w", err)
	}

	logger.Info("export complete", "sheet", sheetName, "records", n)
	return nil
}

// collectSales walks the listing page by page until limit records are
// gathered or the listing runs out. It returns them with the total match count.
// Any store failure aborts the walk.
func collectSales(ctx context.Context, sales data.SalesModel, filter data.Filter, limit int) ([]data.Sale, int64, error) {
	filter.PageSize = exportPageSize

	var (
		collected []data.Sale
		total     int64
	)
	for filter.Page = 1; len(collected) < limit; filter.Page++ {
		page, err := sales.Page(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		if filter.Page == 1 {
			total = page.Total
		}
		if len(page.Sales) == 0 {
			break
		}
		collected = append(collected, page.Sales...)
		if int64(len(collected)) >= page.Total {
			break
		}
	}

	if len(collected) > limit {
		collected = collected[:limit]
	}
	return collected, total, nil
}
