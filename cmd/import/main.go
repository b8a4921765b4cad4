// Command import loads a CSV export of sales records into the record store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/env"
	"github.com/Pedro-J-Kukul/salesrecords/internal/ingest"
	"github.com/Pedro-J-Kukul/salesrecords/internal/mailer"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store"
	"github.com/Pedro-J-Kukul/salesrecords/internal/validator"
)

type config struct {
	csv       string
	batchSize int
	verify    bool
	store     store.Config
	smtp      struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	notify string
}

// reportEmail feeds the import_report template.
type reportEmail struct {
	Source    string
	Processed int
	Inserted  int
	Rejected  int
	Failed    int
	Duration  time.Duration
	Total     int64
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

	if err := run(ctx, cfg, logger); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintln(os.Stderr, red("import failed:"), err)
		os.Exit(1)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (config, error) {
	var cfg config

	fs.StringVar(&cfg.csv, "csv", env.String("IMPORT_CSV", ""), "Path to the sales CSV file")
	fs.IntVar(&cfg.batchSize, "batch-size", env.Int("IMPORT_BATCH_SIZE", ingest.DefaultBatchSize), "Records inserted per batch")
	fs.BoolVar(&cfg.verify, "verify", false, "Summarise the store after importing")
	store.BindFlags(fs, &cfg.store)

	fs.StringVar(&cfg.smtp.host, "smtp-host", env.String("SMTP_HOST", ""), "SMTP host")
	fs.IntVar(&cfg.smtp.port, "smtp-port", env.Int("SMTP_PORT", 587), "SMTP port")
	fs.StringVar(&cfg.smtp.username, "smtp-username", env.String("SMTP_USERNAME", ""), "SMTP username")
	fs.StringVar(&cfg.smtp.password, "smtp-password", env.String("SMTP_PASSWORD", ""), "SMTP password")
	fs.StringVar(&cfg.smtp.sender, "smtp-sender", env.String("SMTP_SENDER", "Sales Records <no-reply@salesrecords.local>"), "SMTP sender")
	fs.StringVar(&cfg.notify, "notify", env.String("IMPORT_NOTIFY", ""), "Address to e-mail the import report to")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := validator.New()
	v.Check(cfg.csv != "", "csv", "must be provided")
	v.Check(cfg.batchSize > 0, "batch-size", "must be greater than zero")
	v.Check(cfg.notify == "" || cfg.smtp.host != "", "smtp-host", "must be provided with -notify")
	store.ValidateConfig(v, cfg.store)
	if !v.IsEmpty() {
		return config{}, fmt.Errorf("invalid configuration: %v", v.Errors)
	}

	return cfg, nil
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	file, err := os.Open(cfg.csv)
	if err != nil {
		return err
	}
	defer file.Close()

	st, closeStore, err := store.Open(ctx, cfg.store)
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Info("importing sales records", "csv", cfg.csv, "store", cfg.store.Backend, "batch_size", cfg.batchSize)

	importer := &ingest.Importer{Store: st, BatchSize: cfg.batchSize, Logger: logger}
	report, err := importer.Run(ctx, file)
	printReport(report)
	if err != nil {
		return err
	}

	var summary *ingest.Summary
	if cfg.verify {
		s, err := ingest.Verify(ctx, st)
		if err != nil {
			return err
		}
		printSummary(s)
		summary = &s
	}

	if cfg.notify != "" {
		m := mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender)
		err := m.Send(ctx, cfg.notify, "import_report.tmpl", newReportEmail(ctx, st, cfg.csv, report, summary, logger))
		if err != nil {
			// the data is already stored
			logger.Error("sending import report", "to", cfg.notify, "error", err)
		}
	}

	return nil
}

// newReportEmail fills the e-mail from the import report. Without a
// verification summary the store total is counted separately; a failed count
// leaves Total at 0, which the template omits.
func newReportEmail(ctx context.Context, st data.RecordStore, source string, r ingest.Report, summary *ingest.Summary, logger *slog.Logger) reportEmail {
	email := reportEmail{
		Source:    source,
		Processed: r.Processed,
		Inserted:  r.Inserted,
		Rejected:  r.Rejected,
		Failed:    r.Failed,
		Duration:  r.Duration.Round(time.Millisecond),
	}

	if summary != nil {
		email.Total = summary.Total
		return email
	}
	total, err := st.Count(ctx, data.Filter{})
	if err != nil {
		logger.Warn("counting records for the import report", "error", err)
		return email
	}
	email.Total = total
	return email
}

func printReport(r ingest.Report) {
	info := color.New(color.FgWhite, color.BgGreen).SprintFunc()
	warn := color.New(color.FgWhite, color.BgYellow).SprintFunc()

	fmt.Println(info(" IMPORT "), "finished in", r.Duration.Round(time.Millisecond))
	fmt.Printf("  processed: %d\n  inserted:  %d\n", r.Processed, r.Inserted)
	if r.Rejected > 0 || r.Failed > 0 {
		fmt.Println(warn(" WARN "), fmt.Sprintf("rejected: %d, failed: %d", r.Rejected, r.Failed))
	}
}

func printSummary(s ingest.Summary) {
	info := color.New(color.FgWhite, color.BgGreen).SprintFunc()

	fmt.Println(info(" VERIFY "), "records in store:", s.Total)
	fmt.Printf("  unique customers: %d\n  unique products:  %d\n", s.UniqueCustomers, s.UniqueProducts)
	for _, sale := range s.Samples {
		var name, category string
		if sale.CustomerName != nil {
			name = *sale.CustomerName
		}
		if sale.ProductCategory != nil {
			category = *sale.ProductCategory
		}
		fmt.Printf("  - %s, %s, %.0f items\n", name, category, sale.Quantity)
	}
}
