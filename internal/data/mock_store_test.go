// File: internal/data/mock_store_test.go
package data_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store/memory"
)

// mockStore is a RecordStore whose answers are scripted per test.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Count(ctx context.Context, f data.Filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) Find(ctx context.Context, f data.Filter) ([]data.Record, error) {
	args := m.Called(ctx, f)
	records, _ := args.Get(0).([]data.Record)
	return records, args.Error(1)
}

func (m *mockStore) Distinct(ctx context.Context, field data.Field, f data.Filter) ([]string, error) {
	args := m.Called(ctx, field, f)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *mockStore) BulkInsert(ctx context.Context, records []data.Record) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sample struct {
	name     string
	phone    string
	gender   string
	age      float64
	region   string
	category string
	brand    string
	tags     string
	payment  string
	quantity float64
	date     time.Time
}

func (s sample) record() data.Record {
	d := s.date
	return data.Record{
		CustomerName:    data.StringPtr(s.name),
		PhoneNumber:     data.StringPtr(s.phone),
		Gender:          data.StringPtr(s.gender),
		Age:             data.FloatPtr(s.age),
		CustomerRegion:  data.StringPtr(s.region),
		ProductCategory: data.StringPtr(s.category),
		Brand:           data.StringPtr(s.brand),
		Tags:            data.StringPtr(s.tags),
		PaymentMethod:   data.StringPtr(s.payment),
		Quantity:        data.FloatPtr(s.quantity),
		Date:            &d,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

var samples = []sample{
	{"Neha Yadav", "+91 9876543210", "Female", 25, "North", "Clothing", "Zara", "casual", "UPI", 3, day(2023, 1, 10)},
	{"Arjun Mehta", "+91 9123456789", "Male", 34, "South", "Electronics", "Sony", "gadgets", "Credit Card", 1, day(2023, 2, 14)},
	{"Priya Singh", "9988776655", "Female", 41, "East", "Beauty", "Lakme", "skincare", "Cash", 5, day(2023, 3, 3)},
	{"Rahul Verma", "9001122334", "Male", 19, "West", "Electronics", "Samsung", "gadgets", "UPI", 2, day(2023, 3, 21)},
	{"Anita Rao", "9812345678", "Female", 58, "North", "Clothing", "H&M", "formal", "Debit Card", 4, day(2023, 4, 9)},
	{"Vikram Das", "9090909090", "Male", 30, "Central", "Beauty", "Nivea", "skincare", "Cash", 2, day(2023, 5, 30)},
	{"a.b*(c) Traders", "9000000001", "Male", 45, "South", "Electronics", "Sony", "audio", "Wallet", 7, day(2023, 6, 1)},
	{"Sneha Kapoor", "9333444555", "Female", 27, "East", "Clothing", "Zara", "casual", "Credit Card", 2, day(2023, 6, 15)},
}

// seededStore returns an in-memory store holding samples.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.New()
	records := make([]data.Record, 0, len(samples))
	for _, s := range samples {
		records = append(records, s.record())
	}
	n, err := store.BulkInsert(context.Background(), records)
	require.NoError(t, err)
	require.Equal(t, len(samples), n)
	return store
}
