// File: internal/data/records.go
package data

import (
	"strings"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/validator"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// Record is a sales record as held by a RecordStore. Any field may be absent,
// except ID which the store assigns on insert.
type Record struct {
	ID string

	CustomerID     *string
	CustomerName   *string
	PhoneNumber    *string
	Gender         *string
	Age            *float64
	CustomerRegion *string
	CustomerType   *string

	ProductID          *string
	ProductName        *string
	Brand              *string
	ProductCategory    *string
	Tags               *string
	Quantity           *float64
	PricePerUnit       *float64
	DiscountPercentage *float64
	TotalAmount        *float64
	FinalAmount        *float64

	Date          *time.Time
	PaymentMethod *string
	OrderStatus   *string
	DeliveryType  *string

	StoreID       *string
	StoreLocation *string
	SalespersonID *string
	EmployeeName  *string
}

// Sale is the public shape of a sales record. Every key is always present:
// numeric fields default to 0 and the others to null.
type Sale struct {
	CustomerID         *string    `json:"customerId"`
	CustomerName       *string    `json:"customerName"`
	PhoneNumber        *string    `json:"phoneNumber"`
	Gender             *string    `json:"gender"`
	Age                float64    `json:"age"`
	CustomerRegion     *string    `json:"customerRegion"`
	CustomerType       *string    `json:"customerType"`
	ProductID          *string    `json:"productId"`
	ProductName        *string    `json:"productName"`
	Brand              *string    `json:"brand"`
	ProductCategory    *string    `json:"productCategory"`
	Tags               *string    `json:"tags"`
	Quantity           float64    `json:"quantity"`
	PricePerUnit       float64    `json:"pricePerUnit"`
	DiscountPercentage float64    `json:"discountPercentage"`
	TotalAmount        float64    `json:"totalAmount"`
	FinalAmount        float64    `json:"finalAmount"`
	Date               *time.Time `json:"date"`
	PaymentMethod      *string    `json:"paymentMethod"`
	OrderStatus        *string    `json:"orderStatus"`
	DeliveryType       *string    `json:"deliveryType"`
	StoreID            *string    `json:"storeId"`
	StoreLocation      *string    `json:"storeLocation"`
	SalespersonID      *string    `json:"salespersonId"`
	EmployeeName       *string    `json:"employeeName"`
}

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

// Normalize converts a stored record into its public shape.
func Normalize(r Record) Sale {
	return Sale{
		CustomerID:         nullableText(r.CustomerID),
		CustomerName:       nullableText(r.CustomerName),
		PhoneNumber:        nullableText(r.PhoneNumber),
		Gender:             nullableText(r.Gender),
		Age:                numberOrZero(r.Age),
		CustomerRegion:     nullableText(r.CustomerRegion),
		CustomerType:       nullableText(r.CustomerType),
		ProductID:          nullableText(r.ProductID),
		ProductName:        nullableText(r.ProductName),
		Brand:              nullableText(r.Brand),
		ProductCategory:    nullableText(r.ProductCategory),
		Tags:               nullableText(r.Tags),
		Quantity:           numberOrZero(r.Quantity),
		PricePerUnit:       numberOrZero(r.PricePerUnit),
		DiscountPercentage: numberOrZero(r.DiscountPercentage),
		TotalAmount:        numberOrZero(r.TotalAmount),
		FinalAmount:        numberOrZero(r.FinalAmount),
		Date:               nullableTime(r.Date),
		PaymentMethod:      nullableText(r.PaymentMethod),
		OrderStatus:        nullableText(r.OrderStatus),
		DeliveryType:       nullableText(r.DeliveryType),
		StoreID:            nullableText(r.StoreID),
		StoreLocation:      nullableText(r.StoreLocation),
		SalespersonID:      nullableText(r.SalespersonID),
		EmployeeName:       nullableText(r.EmployeeName),
	}
}

// Text returns the value of a text field, or nil when the field is absent
// or not a text field.
func (r *Record) Text(f Field) *string {
	switch f {
	case FieldCustomerID:
		return r.CustomerID
	case FieldCustomerName:
		return r.CustomerName
	case FieldPhoneNumber:
		return r.PhoneNumber
	case FieldGender:
		return r.Gender
	case FieldCustomerRegion:
		return r.CustomerRegion
	case FieldCustomerType:
		return r.CustomerType
	case FieldProductID:
		return r.ProductID
	case FieldProductName:
		return r.ProductName
	case FieldBrand:
		return r.Brand
	case FieldProductCategory:
		return r.ProductCategory
	case FieldTags:
		return r.Tags
	case FieldPaymentMethod:
		return r.PaymentMethod
	case FieldOrderStatus:
		return r.OrderStatus
	case FieldDeliveryType:
		return r.DeliveryType
	case FieldStoreID:
		return r.StoreID
	case FieldStoreLocation:
		return r.StoreLocation
	case FieldSalespersonID:
		return r.SalespersonID
	case FieldEmployeeName:
		return r.EmployeeName
	}
	return nil
}

// ValidateRecord checks the numeric bounds of a record before it is stored.
func ValidateRecord(v *validator.Validator, r *Record) {
	if r.Age != nil {
		v.Check(validator.Between(*r.Age, 0, 150), "age", "must be between 0 and 150")
	}
	if r.DiscountPercentage != nil {
		v.Check(validator.Between(*r.DiscountPercentage, 0, 100), "discountPercentage", "must be between 0 and 100")
	}
	nonNegative := map[string]*float64{
		"quantity":     r.Quantity,
		"pricePerUnit": r.PricePerUnit,
		"totalAmount":  r.TotalAmount,
		"finalAmount":  r.FinalAmount,
	}
	for key, value := range nonNegative {
		if value != nil {
			v.Check(*value >= 0, key, "must not be negative")
		}
	}
}

// StringPtr trims s and returns a pointer to it, or nil when nothing is left.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 {
	return &f
}

func nullableText(s *string) *string {
	if s == nil {
		return nil
	}
	return StringPtr(*s)
}

func numberOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func nullableTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}
