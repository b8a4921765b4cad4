package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/ingest"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store/memory"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "Valid", args: []string{"-csv", "sales.csv", "-store", "memory"}},
		{name: "Missing csv", args: []string{"-store", "memory"}, wantErr: "csv"},
		{name: "Bad batch size", args: []string{"-csv", "a.csv", "-store", "memory", "-batch-size", "0"}, wantErr: "batch-size"},
		{name: "Notify without smtp", args: []string{"-csv", "a.csv", "-store", "memory", "-notify", "ops@example.com", "-smtp-host", ""}, wantErr: "smtp-host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(flag.NewFlagSet("import", flag.ContinueOnError), tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "sales.csv", cfg.csv)
			assert.Equal(t, store.BackendMemory, cfg.store.Backend)
		})
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	csv := "Customer Name,Age,Quantity,Date\nNeha Yadav,25,3,2023-01-10\nArjun Mehta,34,1,2023-02-14\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	var cfg config
	cfg.csv = path
	cfg.batchSize = 1
	cfg.verify = true
	cfg.store.Backend = store.BackendMemory

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.NoError(t, run(context.Background(), cfg, logger))
}

func TestRunMissingFile(t *testing.T) {
	var cfg config
	cfg.csv = filepath.Join(t.TempDir(), "missing.csv")
	cfg.store.Backend = store.BackendMemory

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.ErrorIs(t, run(context.Background(), cfg, logger), os.ErrNotExist)
}

type unreachableStore struct {
	*memory.Store
}

func (unreachableStore) Count(context.Context, data.Filter) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestNewReportEmail(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	report := ingest.Report{Processed: 3, Inserted: 2, Rejected: 1}

	st := memory.New()
	_, err := st.BulkInsert(ctx, []data.Record{{}, {}, {}, {}})
	require.NoError(t, err)

	tests := []struct {
		name          string
		store         data.RecordStore
		summary       *ingest.Summary
		expectedTotal int64
	}{
		{name: "Counted without verification", store: st, expectedTotal: 4},
		{name: "Taken from verification", store: st, summary: &ingest.Summary{Total: 9}, expectedTotal: 9},
		{name: "Count failure leaves total out", store: unreachableStore{st}, expectedTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := newReportEmail(ctx, tt.store, "sales.csv", report, tt.summary, logger)
			assert.Equal(t, tt.expectedTotal, email.Total)
			assert.Equal(t, "sales.csv", email.Source)
			assert.Equal(t, 2, email.Inserted)
			assert.Equal(t, 1, email.Rejected)
		})
	}
}
