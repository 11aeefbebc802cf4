package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/llehouerou/crudl-graphql/types"
)

// FormatArgs renders args as a GraphQL argument list.
//
// E.g., {active: true, first: 10} -> `(active: true, first: 10)`.
//
// Entries are written in args enumeration order and each value is JSON
// encoded, except values implementing types.Literal which are written
// verbatim. Empty args render as the empty string. A value that cannot be
// encoded yields Errors coded ErrGraphQLEncode.
func FormatArgs(args types.Args) (string, error) {
	if args.Len() == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, name := range args.Keys() {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(name)
		buf.WriteString(": ")
		value, _ := args.Get(name)
		if err := writeArgumentValue(&buf, value); err != nil {
			return "", newSimpleErrors(ErrGraphQLEncode, fmt.Errorf("failed to encode argument %q: %w", name, err))
		}
	}
	buf.WriteByte(')')
	return buf.String(), nil
}

func writeArgumentValue(buf *bytes.Buffer, value any) error {
	if lit, ok := value.(types.Literal); ok {
		buf.WriteString(lit.GraphQLLiteral())
		return nil
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// mapArgs converts a plain map to Args.
// Keys are sorted alphabetically for deterministic output.
func mapArgs(m map[string]any) types.Args {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var args types.Args
	for _, k := range keys {
		args.Set(k, m[k])
	}
	return args
}
