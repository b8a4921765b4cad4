package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store/memory"
)

func testRecord(name, gender, region, category, brand, payment string, age, quantity float64, date time.Time) data.Record {
	return data.Record{
		CustomerName:    data.StringPtr(name),
		Gender:          data.StringPtr(gender),
		Age:             data.FloatPtr(age),
		CustomerRegion:  data.StringPtr(region),
		ProductCategory: data.StringPtr(category),
		Brand:           data.StringPtr(brand),
		PaymentMethod:   data.StringPtr(payment),
		Tags:            data.StringPtr("retail"),
		Quantity:        data.FloatPtr(quantity),
		Date:            &date,
	}
}

func testRecords() []data.Record {
	d := func(m time.Month, day int) time.Time { return time.Date(2023, m, day, 12, 0, 0, 0, time.Local) }
	return []data.Record{
		testRecord("Neha Yadav", "Female", "North", "Clothing", "Zara", "UPI", 25, 3, d(1, 10)),
		testRecord("Arjun Mehta", "Male", "South", "Electronics", "Sony", "Credit Card", 34, 1, d(2, 14)),
		testRecord("Priya Singh", "Female", "East", "Beauty", "Lakme", "Cash", 41, 5, d(3, 3)),
		testRecord("Rahul Verma", "Male", "West", "Electronics", "Samsung", "UPI", 19, 2, d(3, 21)),
		testRecord("Anita Rao", "Female", "North", "Clothing", "H&M", "Debit Card", 58, 4, d(4, 9)),
		testRecord("Vikram Das", "Male", "Central", "Beauty", "Nivea", "Cash", 30, 2, d(5, 30)),
	}
}

// newTestApp returns an app backed by an in-memory store holding testRecords.
func newTestApp(t *testing.T) (*app, *memory.Store) {
	t.Helper()

	st := memory.New()
	n, err := st.BulkInsert(context.Background(), testRecords())
	require.NoError(t, err)
	require.Equal(t, len(testRecords()), n)

	return newTestAppWithStore(st), st
}

func newTestAppWithStore(st data.RecordStore) *app {
	var cfg config
	cfg.env = "development"
	cfg.cors.trustedOrigins = []string{"http://localhost:5173"}
	cfg.rateLimit.rps = 2
	cfg.rateLimit.burst = 2

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &app{
		config: cfg,
		logger: logger,
		models: data.NewModels(st, logger),
	}
}

func executeRequest(app *app, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

func makeRequest(t *testing.T, app *app, method, url string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, url, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return executeRequest(app, req)
}

func parseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dest), "body: %s", rr.Body.String())
}

// failingStore fails every call.
type failingStore struct {
	err error
}

func (s failingStore) Count(context.Context, data.Filter) (int64, error) { return 0, s.err }

func (s failingStore) Find(context.Context, data.Filter) ([]data.Record, error) { return nil, s.err }

func (s failingStore) Distinct(context.Context, data.Field, data.Filter) ([]string, error) {
	return nil, s.err
}

func (s failingStore) BulkInsert(context.Context, []data.Record) (int, error) { return 0, s.err }
