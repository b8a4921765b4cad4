package validator

import (
	"cmp"
	"slices"
)

// Validator struct to hold validation errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new Validator instance.
func New() *Validator {
	return &Validator{
		Errors: make(map[string]string),
	}
}

// IsEmpty checks if there are no validation errors.
func (v *Validator) IsEmpty() bool {
	return len(v.Errors) == 0
}

// AddErrors adds a new error message for a given key if it doesn't already exist.
func (v *Validator) AddErrors(key string, message string) {
	_, exists := v.Errors[key]
	if !exists {
		v.Errors[key] = message
	}
}

// Check adds an error message for a key if the condition is false.
func (v *Validator) Check(ok bool, key string, message string) {
	if !ok {
		v.AddErrors(key, message)
	}
}

// Permitted checks if the value is within the permitted values.
func Permitted[T comparable](value T, permittedValues ...T) bool {
	return slices.Contains(permittedValues, value)
}

// Between checks that value lies in the closed interval [min, max].
func Between[T cmp.Ordered](value, min, max T) bool {
	return value >= min && value <= max
}
