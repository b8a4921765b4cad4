// File: internal/ingest/importer.go

// Package ingest loads sales records from CSV exports into a RecordStore.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/validator"
)

const DefaultBatchSize = 5000

// Report summarises one import run.
type Report struct {
	Processed int           `json:"processed"`
	Inserted  int           `json:"inserted"`
	Rejected  int           `json:"rejected"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// Importer streams CSV rows into a store in batches.
type Importer struct {
	Store     data.RecordStore
	BatchSize int
	Logger    *slog.Logger

	// Now stamps rows whose date is missing or unreadable. Defaults to time.Now.
	Now func() time.Time
}

// Run reads a CSV document with a header line from r and inserts every valid
// row. Rows breaking the record bounds are rejected; rows the store refuses
// are counted as failed and the import carries on with the next batch.
func (im *Importer) Run(ctx context.Context, r io.Reader) (report Report, err error) {
	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	batchSize := im.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	now := time.Now
	if im.Now != nil {
		now = im.Now
	}
	logger := im.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	batch := make([]data.Record, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		n, err := im.Store.BulkInsert(ctx, batch)
		report.Inserted += n
		if err != nil {
			report.Failed += len(batch) - n
			logger.Error("batch insert failed",
				slog.Int("batch_size", len(batch)),
				slog.Int("inserted", n),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("batch inserted",
				slog.Int("batch_size", len(batch)),
				slog.Int("total_inserted", report.Inserted),
			)
		}
		batch = make([]data.Record, 0, batchSize)
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			flush()
			return report, fmt.Errorf("read csv line %d: %w", report.Processed+2, err)
		}
		report.Processed++

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}

		rec := Transform(row, now())
		v := validator.New()
		data.ValidateRecord(v, &rec)
		if !v.IsEmpty() {
			report.Rejected++
			logger.Debug("row rejected",
				slog.Int("line", report.Processed+1),
				slog.Any("errors", v.Errors),
			)
			continue
		}

		batch = append(batch, rec)
		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()

	return report, nil
}
