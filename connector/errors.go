package connector

import (
	"slices"
	"sort"
	"strings"

	"github.com/llehouerou/crudl-graphql/types"
)

// TransformErrors renames the first non-field error key "__all__" to
// "_error", the key under which forms show errors not tied to a field.
// keys is modified in place and returned.
//
// E.g., ["__all__", "name"] -> ["_error", "name"].
func TransformErrors(keys []string) []string {
	if i := slices.Index(keys, types.NonFieldErrorKey); i != -1 {
		keys[i] = types.FormErrorKey
	}
	return keys
}

// FieldErrors converts the flat [field, message, field, message, ...] list
// returned by mutations into a map from field to message. A trailing field
// without a message is kept with an empty message.
func FieldErrors(pairs []string) map[string]string {
	keys := make([]string, 0, (len(pairs)+1)/2)
	messages := make([]string, 0, cap(keys))
	for i := 0; i < len(pairs); i += 2 {
		keys = append(keys, pairs[i])
		msg := ""
		if i+1 < len(pairs) {
			msg = pairs[i+1]
		}
		messages = append(messages, msg)
	}
	TransformErrors(keys)

	out := make(map[string]string, len(keys))
	for i, k := range keys {
		if prev, ok := out[k]; ok && prev != "" {
			out[k] = prev + "; " + messages[i]
			continue
		}
		out[k] = messages[i]
	}
	return out
}

// ValidationError is returned when the backend rejects submitted data.
// Fields maps field names, or "_error" for non-field errors, to messages.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from backend field errors,
// renaming the non-field error key.
func NewValidationError(fields map[string]string) *ValidationError {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	renamed := TransformErrors(slices.Clone(keys))

	out := make(map[string]string, len(fields))
	for i, k := range keys {
		out[renamed[i]] = fields[k]
	}
	return &ValidationError{Fields: out}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed")
	for i, k := range keys {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}
