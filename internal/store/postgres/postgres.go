// File: internal/store/postgres/postgres.go

// Package postgres stores sales records in a PostgreSQL table.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

const (
	table = "sales_records"

	// 25 columns per row keeps a full chunk well under the 65535 bind parameter limit.
	insertChunkSize = 1000
)

//go:embed schema.sql
var schema string

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// columns maps each record field to its column.
var columns = map[data.Field]string{
	data.FieldCustomerID:         "customer_id",
	data.FieldCustomerName:       "customer_name",
	data.FieldPhoneNumber:        "phone_number",
	data.FieldGender:             "gender",
	data.FieldAge:                "age",
	data.FieldCustomerRegion:     "customer_region",
	data.FieldCustomerType:       "customer_type",
	data.FieldProductID:          "product_id",
	data.FieldProductName:        "product_name",
	data.FieldBrand:              "brand",
	data.FieldProductCategory:    "product_category",
	data.FieldTags:               "tags",
	data.FieldQuantity:           "quantity",
	data.FieldPricePerUnit:       "price_per_unit",
	data.FieldDiscountPercentage: "discount_percentage",
	data.FieldTotalAmount:        "total_amount",
	data.FieldFinalAmount:        "final_amount",
	data.FieldDate:               "date",
	data.FieldPaymentMethod:      "payment_method",
	data.FieldOrderStatus:        "order_status",
	data.FieldDeliveryType:       "delivery_type",
	data.FieldStoreID:            "store_id",
	data.FieldStoreLocation:      "store_location",
	data.FieldSalespersonID:      "salesperson_id",
	data.FieldEmployeeName:       "employee_name",
}

// insertColumns is the column order used by BulkInsert and row.values.
var insertColumns = []string{
	"customer_id", "customer_name", "phone_number", "gender", "age",
	"customer_region", "customer_type", "product_id", "product_name", "brand",
	"product_category", "tags", "quantity", "price_per_unit", "discount_percentage",
	"total_amount", "final_amount", "date", "payment_method", "order_status",
	"delivery_type", "store_id", "store_location", "salesperson_id", "employee_name",
}

var selectColumns = append([]string{"id"}, insertColumns...)

// Config holds the connection pool settings.
type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// Store is a RecordStore backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// New wraps an open connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL, configures the pool and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to postgres: %w", data.ErrStoreUnavailable, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %w", data.ErrStoreUnavailable, err)
	}

	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the records table and its indexes when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ----------------------------------------------------------------------
//
//	RecordStore
//
// ----------------------------------------------------------------------

// Count returns the number of rows matching f.
func (s *Store) Count(ctx context.Context, f data.Filter) (int64, error) {
	query, args, err := countQuery(f)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count sales records: %w", err)
	}
	return total, nil
}

// Find returns the sorted page of rows selected by f.
func (s *Store) Find(ctx context.Context, f data.Filter) ([]data.Record, error) {
	query, args, err := findQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []row
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find sales records: %w", err)
	}

	records := make([]data.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// Distinct returns the distinct non-null values of a text field.
func (s *Store) Distinct(ctx context.Context, field data.Field, f data.Filter) ([]string, error) {
	query, args, err := distinctQuery(field, f)
	if err != nil {
		return nil, err
	}

	values := []string{}
	if err := s.db.SelectContext(ctx, &values, query, args...); err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	return values, nil
}

// BulkInsert inserts records in chunks. It stops at the first failing chunk
// and reports how many rows were stored before it.
func (s *Store) BulkInsert(ctx context.Context, records []data.Record) (int, error) {
	inserted := 0
	for start := 0; start < len(records); start += insertChunkSize {
		end := min(start+insertChunkSize, len(records))

		query, args, err := insertQuery(records[start:end])
		if err != nil {
			return inserted, err
		}
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("insert sales records: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = int64(end - start)
		}
		inserted += int(n)
	}
	return inserted, nil
}

// ----------------------------------------------------------------------
//
//	Query translation
//
// ----------------------------------------------------------------------

func countQuery(f data.Filter) (string, []any, error) {
	b, err := where(psql.Select("count(*)").From(table), f)
	if err != nil {
		return "", nil, err
	}
	return b.ToSql()
}

func findQuery(f data.Filter) (string, []any, error) {
	b, err := where(psql.Select(selectColumns...).From(table), f)
	if err != nil {
		return "", nil, err
	}

	col, ok := columns[f.Sort.Field]
	if !ok {
		return "", nil, fmt.Errorf("%w: sort by %q", data.ErrUnknownField, f.Sort.Field)
	}
	// text sorts compare bytes, whatever the database collation
	if f.Sort.Field.IsText() {
		col += ` COLLATE "C"`
	}
	if f.Sort.Descending {
		b = b.OrderBy(col+" DESC NULLS LAST", "id DESC")
	} else {
		b = b.OrderBy(col+" ASC NULLS FIRST", "id ASC")
	}

	if f.Limit() > 0 {
		b = b.Limit(uint64(f.Limit()))
	}
	if f.Offset() > 0 {
		b = b.Offset(uint64(f.Offset()))
	}
	return b.ToSql()
}

func distinctQuery(field data.Field, f data.Filter) (string, []any, error) {
	col, ok := columns[field]
	if !ok || !field.IsText() {
		return "", nil, fmt.Errorf("%w: %s", data.ErrUnknownField, field)
	}

	b, err := where(psql.Select(col).Distinct().From(table).Where(sq.NotEq{col: nil}), f)
	if err != nil {
		return "", nil, err
	}
	return b.ToSql()
}

func insertQuery(records []data.Record) (string, []any, error) {
	b := psql.Insert(table).Columns(insertColumns...)
	for _, r := range records {
		b = b.Values(fromRecord(r).values()...)
	}
	return b.ToSql()
}

// where adds one condition per constraint of f. Constraints are AND-ed.
func where(b sq.SelectBuilder, f data.Filter) (sq.SelectBuilder, error) {
	for _, m := range f.Memberships {
		col, ok := columns[m.Field]
		if !ok {
			return b, fmt.Errorf("%w: %s", data.ErrUnknownField, m.Field)
		}
		b = b.Where(sq.Expr(col+" = ANY(?)", pq.Array(m.Values)))
	}

	if f.Search != nil {
		anyOf := sq.Or{}
		for _, field := range f.Search.Fields {
			col, ok := columns[field]
			if !ok {
				return b, fmt.Errorf("%w: %s", data.ErrUnknownField, field)
			}
			anyOf = append(anyOf, sq.Expr(col+" ~* ?", f.Search.Pattern))
		}
		if len(anyOf) > 0 {
			b = b.Where(anyOf)
		}
	}

	if f.Age != nil {
		if f.Age.Min != nil {
			b = b.Where(sq.GtOrEq{"age": *f.Age.Min})
		}
		if f.Age.Max != nil {
			b = b.Where(sq.LtOrEq{"age": *f.Age.Max})
		}
	}

	if f.Date != nil {
		if f.Date.Start != nil {
			b = b.Where(sq.GtOrEq{"date": *f.Date.Start})
		}
		if f.Date.End != nil {
			b = b.Where(sq.LtOrEq{"date": *f.Date.End})
		}
	}

	return b, nil
}

// ----------------------------------------------------------------------
//
//	Rows
//
// ----------------------------------------------------------------------

type row struct {
	ID                 int64      `db:"id"`
	CustomerID         *string    `db:"customer_id"`
	CustomerName       *string    `db:"customer_name"`
	PhoneNumber        *string    `db:"phone_number"`
	Gender             *string    `db:"gender"`
	Age                *float64   `db:"age"`
	CustomerRegion     *string    `db:"customer_region"`
	CustomerType       *string    `db:"customer_type"`
	ProductID          *string    `db:"product_id"`
	ProductName        *string    `db:"product_name"`
	Brand              *string    `db:"brand"`
	ProductCategory    *string    `db:"product_category"`
	Tags               *string    `db:"tags"`
	Quantity           *float64   `db:"quantity"`
	PricePerUnit       *float64   `db:"price_per_unit"`
	DiscountPercentage *float64   `db:"discount_percentage"`
	TotalAmount        *float64   `db:"total_amount"`
	FinalAmount        *float64   `db:"final_amount"`
	Date               *time.Time `db:"date"`
	PaymentMethod      *string    `db:"payment_method"`
	OrderStatus        *string    `db:"order_status"`
	DeliveryType       *string    `db:"delivery_type"`
	StoreID            *string    `db:"store_id"`
	StoreLocation      *string    `db:"store_location"`
	SalespersonID      *string    `db:"salesperson_id"`
	EmployeeName       *string    `db:"employee_name"`
}

func fromRecord(r data.Record) row {
	return row{
		CustomerID:         r.CustomerID,
		CustomerName:       r.CustomerName,
		PhoneNumber:        r.PhoneNumber,
		Gender:             r.Gender,
		Age:                r.Age,
		CustomerRegion:     r.CustomerRegion,
		CustomerType:       r.CustomerType,
		ProductID:          r.ProductID,
		ProductName:        r.ProductName,
		Brand:              r.Brand,
		ProductCategory:    r.ProductCategory,
		Tags:               r.Tags,
		Quantity:           r.Quantity,
		PricePerUnit:       r.PricePerUnit,
		DiscountPercentage: r.DiscountPercentage,
		TotalAmount:        r.TotalAmount,
		FinalAmount:        r.FinalAmount,
		Date:               r.Date,
		PaymentMethod:      r.PaymentMethod,
		OrderStatus:        r.OrderStatus,
		DeliveryType:       r.DeliveryType,
		StoreID:            r.StoreID,
		StoreLocation:      r.StoreLocation,
		SalespersonID:      r.SalespersonID,
		EmployeeName:       r.EmployeeName,
	}
}

// values lists the row in insertColumns order.
func (r row) values() []any {
	return []any{
		r.CustomerID, r.CustomerName, r.PhoneNumber, r.Gender, r.Age,
		r.CustomerRegion, r.CustomerType, r.ProductID, r.ProductName, r.Brand,
		r.ProductCategory, r.Tags, r.Quantity, r.PricePerUnit, r.DiscountPercentage,
		r.TotalAmount, r.FinalAmount, r.Date, r.PaymentMethod, r.OrderStatus,
		r.DeliveryType, r.StoreID, r.StoreLocation, r.SalespersonID, r.EmployeeName,
	}
}

func (r row) record() data.Record {
	return data.Record{
		ID:                 fmt.Sprint(r.ID),
		CustomerID:         r.CustomerID,
		CustomerName:       r.CustomerName,
		PhoneNumber:        r.PhoneNumber,
		Gender:             r.Gender,
		Age:                r.Age,
		CustomerRegion:     r.CustomerRegion,
		CustomerType:       r.CustomerType,
		ProductID:          r.ProductID,
		ProductName:        r.ProductName,
		Brand:              r.Brand,
		ProductCategory:    r.ProductCategory,
		Tags:               r.Tags,
		Quantity:           r.Quantity,
		PricePerUnit:       r.PricePerUnit,
		DiscountPercentage: r.DiscountPercentage,
		TotalAmount:        r.TotalAmount,
		FinalAmount:        r.FinalAmount,
		Date:               r.Date,
		PaymentMethod:      r.PaymentMethod,
		OrderStatus:        r.OrderStatus,
		DeliveryType:       r.DeliveryType,
		StoreID:            r.StoreID,
		StoreLocation:      r.StoreLocation,
		SalespersonID:      r.SalespersonID,
		EmployeeName:       r.EmployeeName,
	}
}
