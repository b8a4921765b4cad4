// File: internal/data/fields.go
package data

// Field names a queryable attribute of a sales record. The value doubles as the
// public JSON key and as the document key used by the document store.
type Field string

const (
	FieldCustomerID         Field = "customerId"
	FieldCustomerName       Field = "customerName"
	FieldPhoneNumber        Field = "phoneNumber"
	FieldGender             Field = "gender"
	FieldAge                Field = "age"
	FieldCustomerRegion     Field = "customerRegion"
	FieldCustomerType       Field = "customerType"
	FieldProductID          Field = "productId"
	FieldProductName        Field = "productName"
	FieldBrand              Field = "brand"
	FieldProductCategory    Field = "productCategory"
	FieldTags               Field = "tags"
	FieldQuantity           Field = "quantity"
	FieldPricePerUnit       Field = "pricePerUnit"
	FieldDiscountPercentage Field = "discountPercentage"
	FieldTotalAmount        Field = "totalAmount"
	FieldFinalAmount        Field = "finalAmount"
	FieldDate               Field = "date"
	FieldPaymentMethod      Field = "paymentMethod"
	FieldOrderStatus        Field = "orderStatus"
	FieldDeliveryType       Field = "deliveryType"
	FieldStoreID            Field = "storeId"
	FieldStoreLocation      Field = "storeLocation"
	FieldSalespersonID      Field = "salespersonId"
	FieldEmployeeName       Field = "employeeName"
)

// SearchFields are matched, OR-ed together, by the free-text search.
var SearchFields = []Field{
	FieldCustomerName,
	FieldPhoneNumber,
	FieldCustomerRegion,
	FieldGender,
	FieldProductCategory,
}

// textFields lists every string-valued field; only these support Distinct.
var textFields = map[Field]bool{
	FieldCustomerID:      true,
	FieldCustomerName:    true,
	FieldPhoneNumber:     true,
	FieldGender:          true,
	FieldCustomerRegion:  true,
	FieldCustomerType:    true,
	FieldProductID:       true,
	FieldProductName:     true,
	FieldBrand:           true,
	FieldProductCategory: true,
	FieldTags:            true,
	FieldPaymentMethod:   true,
	FieldOrderStatus:     true,
	FieldDeliveryType:    true,
	FieldStoreID:         true,
	FieldStoreLocation:   true,
	FieldSalespersonID:   true,
	FieldEmployeeName:    true,
}

// IsText reports whether the field holds free text.
func (f Field) IsText() bool {
	return textFields[f]
}

func (f Field) String() string {
	return string(f)
}
