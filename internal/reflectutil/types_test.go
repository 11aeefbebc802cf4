package reflectutil

import (
	"reflect"
	"testing"
	"time"
)

type customScalar struct{ v string }

func (c *customScalar) UnmarshalJSON(b []byte) error {
	c.v = string(b)
	return nil
}

func TestIndirect(t *testing.T) {
	type node struct{ ID string }
	tests := []struct {
		name string
		in   reflect.Type
		want reflect.Type
	}{
		{"struct", reflect.TypeOf(node{}), reflect.TypeOf(node{})},
		{"pointer", reflect.TypeOf(&node{}), reflect.TypeOf(node{})},
		{"slice of pointers", reflect.TypeOf([]*node{}), reflect.TypeOf(node{})},
		{"array", reflect.TypeOf([2]string{}), reflect.TypeOf("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Indirect(tt.in); got != tt.want {
				t.Errorf("Indirect(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsScalarType(t *testing.T) {
	type node struct{ ID string }
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"string", "", true},
		{"int slice", []int{}, true},
		{"time", time.Time{}, true},
		{"custom scalar", customScalar{}, true},
		{"struct", node{}, false},
		{"struct pointer slice", []*node{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsScalarType(reflect.TypeOf(tt.in)); got != tt.want {
				t.Errorf("IsScalarType(%T) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLowerCamelCase(t *testing.T) {
	tests := map[string]string{
		"Name":        "name",
		"ID":          "id",
		"URLPath":     "urlPath",
		"HasNextPage": "hasNextPage",
		"UserID":      "userID",
		"name":        "name",
		"":            "",
	}
	for in, want := range tests {
		if got := LowerCamelCase(in); got != want {
			t.Errorf("LowerCamelCase(%q) = %q, expected %q", in, got, want)
		}
	}
}
