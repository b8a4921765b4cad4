// File: internal/ingest/transform.go
package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

// headerAliases lists the CSV column names accepted for each field, in
// order of preference.
var headerAliases = map[data.Field][]string{
	data.FieldCustomerID:         {"Customer ID", "CustomerID", "customer_id"},
	data.FieldCustomerName:       {"Customer Name", "CustomerName", "customer_name"},
	data.FieldPhoneNumber:        {"Phone Number", "PhoneNumber", "phone_number"},
	data.FieldGender:             {"Gender", "gender"},
	data.FieldAge:                {"Age", "age"},
	data.FieldCustomerRegion:     {"Customer Region", "CustomerRegion", "customer_region"},
	data.FieldCustomerType:       {"Customer Type", "CustomerType", "customer_type"},
	data.FieldProductID:          {"Product ID", "ProductID", "product_id"},
	data.FieldProductName:        {"Product Name", "ProductName", "product_name"},
	data.FieldBrand:              {"Brand", "brand"},
	data.FieldProductCategory:    {"Product Category", "ProductCategory", "product_category", "Product_Category"},
	data.FieldTags:               {"Tags", "tags"},
	data.FieldQuantity:           {"Quantity", "quantity"},
	data.FieldPricePerUnit:       {"Price per Unit", "PricePerUnit", "price_per_unit"},
	data.FieldDiscountPercentage: {"Discount Percentage", "DiscountPercentage", "discount_percentage"},
	data.FieldTotalAmount:        {"Total Amount", "TotalAmount", "total_amount"},
	data.FieldFinalAmount:        {"Final Amount", "FinalAmount", "final_amount"},
	data.FieldDate:               {"Date", "date"},
	data.FieldPaymentMethod:      {"Payment Method", "PaymentMethod", "payment_method"},
	data.FieldOrderStatus:        {"Order Status", "OrderStatus", "order_status"},
	data.FieldDeliveryType:       {"Delivery Type", "DeliveryType", "delivery_type"},
	data.FieldStoreID:            {"Store ID", "StoreID", "store_id"},
	data.FieldStoreLocation:      {"Store Location", "StoreLocation", "store_location"},
	data.FieldSalespersonID:      {"Salesperson ID", "SalespersonID", "salesperson_id"},
	data.FieldEmployeeName:       {"Employee Name", "EmployeeName", "employee_name"},
}

var csvDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"01/02/2006",
	"1/2/2006",
}

// Row is one CSV line keyed by header.
type Row map[string]string

// value returns the first non-blank value among the aliases of f.
func (r Row) value(f data.Field) string {
	for _, name := range headerAliases[f] {
		if v := strings.TrimSpace(r[name]); v != "" {
			return v
		}
	}
	return ""
}

func (r Row) text(f data.Field) *string {
	return data.StringPtr(r.value(f))
}

// number parses f, defaulting to 0 when blank or not a number.
func (r Row) number(f data.Field) *float64 {
	n, err := strconv.ParseFloat(r.value(f), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	return data.FloatPtr(n)
}

// date parses f, falling back to now when blank or unparseable.
func (r Row) date(f data.Field, now time.Time) *time.Time {
	raw := r.value(f)
	for _, layout := range csvDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t
		}
	}
	return &now
}

// Transform converts a CSV row into a record. Text is trimmed and blanks
// become absent values; numbers default to 0 and dates to now.
func Transform(r Row, now time.Time) data.Record {
	return data.Record{
		CustomerID:         r.text(data.FieldCustomerID),
		CustomerName:       r.text(data.FieldCustomerName),
		PhoneNumber:        r.text(data.FieldPhoneNumber),
		Gender:             r.text(data.FieldGender),
		Age:                r.number(data.FieldAge),
		CustomerRegion:     r.text(data.FieldCustomerRegion),
		CustomerType:       r.text(data.FieldCustomerType),
		ProductID:          r.text(data.FieldProductID),
		ProductName:        r.text(data.FieldProductName),
		Brand:              r.text(data.FieldBrand),
		ProductCategory:    r.text(data.FieldProductCategory),
		Tags:               r.text(data.FieldTags),
		Quantity:           r.number(data.FieldQuantity),
		PricePerUnit:       r.number(data.FieldPricePerUnit),
		DiscountPercentage: r.number(data.FieldDiscountPercentage),
		TotalAmount:        r.number(data.FieldTotalAmount),
		FinalAmount:        r.number(data.FieldFinalAmount),
		Date:               r.date(data.FieldDate, now),
		PaymentMethod:      r.text(data.FieldPaymentMethod),
		OrderStatus:        r.text(data.FieldOrderStatus),
		DeliveryType:       r.text(data.FieldDeliveryType),
		StoreID:            r.text(data.FieldStoreID),
		StoreLocation:      r.text(data.FieldStoreLocation),
		SalespersonID:      r.text(data.FieldSalespersonID),
		EmployeeName:       r.text(data.FieldEmployeeName),
	}
}
