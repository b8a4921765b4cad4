// File: internal/store/mongo/document.go
package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
)

// document is the stored shape of a sales record. Keys match data.Field
// values so query documents can be built from field names directly.
type document struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID         *string            `bson:"customerId,omitempty"`
	CustomerName       *string            `bson:"customerName,omitempty"`
	PhoneNumber        *string            `bson:"phoneNumber,omitempty"`
	Gender             *string            `bson:"gender,omitempty"`
	Age                *float64           `bson:"age,omitempty"`
	CustomerRegion     *string            `bson:"customerRegion,omitempty"`
	CustomerType       *string            `bson:"customerType,omitempty"`
	ProductID          *string            `bson:"productId,omitempty"`
	ProductName        *string            `bson:"productName,omitempty"`
	Brand              *string            `bson:"brand,omitempty"`
	ProductCategory    *string            `bson:"productCategory,omitempty"`
	Tags               *string            `bson:"tags,omitempty"`
	Quantity           *float64           `bson:"quantity,omitempty"`
	PricePerUnit       *float64           `bson:"pricePerUnit,omitempty"`
	DiscountPercentage *float64           `bson:"discountPercentage,omitempty"`
	TotalAmount        *float64           `bson:"totalAmount,omitempty"`
	FinalAmount        *float64           `bson:"finalAmount,omitempty"`
	Date               *time.Time         `bson:"date,omitempty"`
	PaymentMethod      *string            `bson:"paymentMethod,omitempty"`
	OrderStatus        *string            `bson:"orderStatus,omitempty"`
	DeliveryType       *string            `bson:"deliveryType,omitempty"`
	StoreID            *string            `bson:"storeId,omitempty"`
	StoreLocation      *string            `bson:"storeLocation,omitempty"`
	SalespersonID      *string            `bson:"salespersonId,omitempty"`
	EmployeeName       *string            `bson:"employeeName,omitempty"`
}

func fromRecord(r data.Record) document {
	d := document{
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
	if id, err := primitive.ObjectIDFromHex(r.ID); err == nil {
		d.ID = id
	}
	return d
}

func (d document) record() data.Record {
	r := data.Record{
		CustomerID:         d.CustomerID,
		CustomerName:       d.CustomerName,
		PhoneNumber:        d.PhoneNumber,
		Gender:             d.Gender,
		Age:                d.Age,
		CustomerRegion:     d.CustomerRegion,
		CustomerType:       d.CustomerType,
		ProductID:          d.ProductID,
		ProductName:        d.ProductName,
		Brand:              d.Brand,
		ProductCategory:    d.ProductCategory,
		Tags:               d.Tags,
		Quantity:           d.Quantity,
		PricePerUnit:       d.PricePerUnit,
		DiscountPercentage: d.DiscountPercentage,
		TotalAmount:        d.TotalAmount,
		FinalAmount:        d.FinalAmount,
		Date:               d.Date,
		PaymentMethod:      d.PaymentMethod,
		OrderStatus:        d.OrderStatus,
		DeliveryType:       d.DeliveryType,
		StoreID:            d.StoreID,
		StoreLocation:      d.StoreLocation,
		SalespersonID:      d.SalespersonID,
		EmployeeName:       d.EmployeeName,
	}
	if !d.ID.IsZero() {
		r.ID = d.ID.Hex()
	}
	return r
}
