package graphql

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/llehouerou/crudl-graphql/internal/reflectutil"
	"github.com/llehouerou/crudl-graphql/internal/tagparser"
	"github.com/llehouerou/crudl-graphql/types"
)

// StructFields derives a selection from the exported fields of the struct
// type of v.
//
// E.g., struct{ID string; Name string; User *struct{ID, Username string}}
// -> "id, name, user { id, username }".
//
// The selected name of a field is taken from its graphql tag (which may
// carry an alias and arguments), then its json tag, then its Go name in
// lowerCamelCase. A graphql tag of "-" skips the field, `scalar:"true"`
// prevents expansion of a struct field, and embedded structs without a
// tag are inlined. A tag of the form "... on Type" writes an inline
// fragment.
func StructFields(v any) (FieldName, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return "", fmt.Errorf("cannot derive fields from nil")
	}
	t = reflectutil.Indirect(t)
	if t.Kind() != reflect.Struct {
		return "", fmt.Errorf("cannot derive fields from %v: not a struct", t)
	}
	var buf bytes.Buffer
	if err := writeSelection(&buf, t, map[reflect.Type]bool{}); err != nil {
		return "", fmt.Errorf("failed to derive fields: %w", err)
	}
	return FieldName(buf.String()), nil
}

// MustStructFields is like StructFields but panics on error. It is meant
// for package level descriptor declarations.
func MustStructFields(v any) FieldName {
	f, err := StructFields(v)
	if err != nil {
		panic(err)
	}
	return f
}

// writeSelection writes the comma separated selection of struct type t.
// visiting guards against recursive types.
func writeSelection(w io.Writer, t reflect.Type, visiting map[reflect.Type]bool) error {
	if visiting[t] {
		return fmt.Errorf("recursive type %v", t)
	}
	visiting[t] = true
	defer delete(visiting, t)

	n := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() && !f.Anonymous {
			continue
		}

		var field bytes.Buffer
		written, err := writeField(&field, f, visiting)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		if !written {
			continue
		}
		if n > 0 {
			_, _ = io.WriteString(w, ", ")
		}
		n++
		_, _ = w.Write(field.Bytes())
	}
	return nil
}

// writeField writes the selection of a single struct field and reports
// whether anything was written.
func writeField(w io.Writer, f reflect.StructField, visiting map[reflect.Type]bool) (bool, error) {
	tag, hasTag := f.Tag.Lookup(types.GraphQLTag)
	parsed, err := tagparser.ParseGraphQLTag(tag)
	if err != nil {
		return false, err
	}
	if parsed.Skip {
		return false, nil
	}

	ft := reflectutil.Indirect(f.Type)
	if f.Anonymous && !hasTag {
		if ft.Kind() != reflect.Struct {
			return false, nil
		}
		var inner bytes.Buffer
		if err := writeSelection(&inner, ft, visiting); err != nil {
			return false, err
		}
		_, _ = w.Write(inner.Bytes())
		return inner.Len() > 0, nil
	}

	if parsed.FieldName == "" && !parsed.IsFragment {
		parsed.FieldName = fieldName(f)
		if parsed.FieldName == "" {
			return false, nil
		}
	}
	_, _ = io.WriteString(w, parsed.String())

	if reflectutil.IsTrue(f.Tag.Get(types.ScalarTag)) || reflectutil.IsScalarType(ft) {
		if parsed.IsFragment {
			return false, fmt.Errorf("fragment on %s must be a struct", parsed.TypeName)
		}
		return true, nil
	}

	_, _ = io.WriteString(w, " { ")
	if err := writeSelection(w, ft, visiting); err != nil {
		return false, err
	}
	_, _ = io.WriteString(w, " }")
	return true, nil
}

// fieldName returns the name from the json tag, or the Go name in
// lowerCamelCase. It returns "" for json:"-".
func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup(types.JSONTag); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return reflectutil.LowerCamelCase(f.Name)
}
