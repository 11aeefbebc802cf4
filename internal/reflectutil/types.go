package reflectutil

import (
	"encoding"
	"encoding/json"
	"reflect"
	"unicode"
)

var (
	jsonUnmarshaler = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Indirect strips pointers, slices and arrays from t and returns the
// element type a selection is written for.
func Indirect(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}
}

// IsScalarType reports whether t is selected without a sub-selection:
// every non-struct type, and structs that decode themselves from JSON or
// text (time.Time, custom scalars).
func IsScalarType(t reflect.Type) bool {
	t = Indirect(t)
	if t.Kind() != reflect.Struct {
		return true
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(jsonUnmarshaler) || pt.Implements(textUnmarshaler)
}

// LowerCamelCase converts an exported Go identifier to the lowerCamelCase
// form GraphQL fields use.
//
// E.g., "Name" -> "name", "ID" -> "id", "URLPath" -> "urlPath",
// "HasNextPage" -> "hasNextPage".
func LowerCamelCase(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return name
	case n == 1 || n == len(runes):
		// "Name" or "ID"
	default:
		// "URLPath": keep the last capital, it starts the next word
		if unicode.IsLower(runes[n]) {
			n--
		}
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
