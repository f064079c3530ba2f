package validation

import (
	"reflect"
	"time"

	rerrors "github.com/vnykmshr/regulator/pkg/common/errors"
)

// ValidateNonNegativeDuration validates that a duration is zero or positive.
// Returns a ValidationError if the duration is negative.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return rerrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive duration")
	}
	return nil
}

// ValidateNotNil validates that a value is not nil. Typed nil pointers,
// funcs, maps, slices, channels and interfaces count as nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if isNil(value) {
		return rerrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	}
	return false
}
