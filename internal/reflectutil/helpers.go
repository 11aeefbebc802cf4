// Package reflectutil holds the reflection helpers shared by field
// selection and item matching.
package reflectutil

import (
	"encoding/json"
	"reflect"
	"strconv"
)

// IsTrue parses a string as a boolean value.
// Returns true if the string represents a true value, false otherwise.
// Ignores parsing errors and returns false as the default.
func IsTrue(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// IsIntegerKind reports whether kind is a signed or unsigned integer kind.
func IsIntegerKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// NumberValue returns v as a float64 if v is a Go number or a json.Number.
func NumberValue(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case IsIntegerKind(rv.Kind()):
		if rv.CanInt() {
			return float64(rv.Int()), true
		}
		return float64(rv.Uint()), true
	case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
