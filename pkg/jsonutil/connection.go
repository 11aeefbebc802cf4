// Package jsonutil provides functions for decoding GraphQL results, in
// particular Relay connections.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/llehouerou/crudl-graphql/types"
)

var (
	// ErrMalformedResponse is returned when a result does not have the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed response shape")

	// ErrAmbiguousRoot is returned when no root field name is given and the
	// data object has more than one root field.
	ErrAmbiguousRoot = errors.New("response has more than one root field")
)

// Unmarshal decodes JSON data into v. Numbers decoded into interface
// values become json.Number so ids and counts keep their exact text.
func Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	tok, err := dec.Token()
	switch err {
	case io.EOF:
		// Expect to get io.EOF. There shouldn't be any more
		// tokens left after we've decoded v successfully.
		return nil
	case nil:
		return fmt.Errorf("invalid token '%v' after top-level value", tok)
	default:
		return err
	}
}

// RootField returns the raw value of the root field of a GraphQL data
// object. If root is empty the object must have exactly one field, which
// is used.
func RootField(data []byte, root string) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: no data", ErrMalformedResponse)
	}
	if root == "" {
		if len(fields) > 1 {
			names := make([]string, 0, len(fields))
			for k := range fields {
				names = append(names, k)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousRoot, strings.Join(names, ", "))
		}
		for k := range fields {
			root = k
		}
		if root == "" {
			return nil, fmt.Errorf("%w: no root field", ErrMalformedResponse)
		}
	}
	raw, ok := fields[root]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%w: missing root field %s", ErrMalformedResponse, root)
	}
	return raw, nil
}

// Connection is the page metadata of a decoded Relay connection.
type Connection struct {
	PageInfo   types.PageInfo
	TotalCount *int
}

// UnmarshalConnection decodes the connection under root in the GraphQL data
// object data. The node of every edge is decoded into nodes, which must be
// a pointer to a slice.
//
// E.g., {"allTags": {"pageInfo": {...}, "edges": [{"node": {"id": "1"}}]}}
// decodes [{"id": "1"}] into nodes.
func UnmarshalConnection(data []byte, root string, nodes any) (Connection, error) {
	raw, err := RootField(data, root)
	if err != nil {
		return Connection{}, err
	}
	var conn struct {
		PageInfo   *types.PageInfo `json:"pageInfo"`
		TotalCount *int            `json:"totalCount"`
		Edges      []struct {
			Node json.RawMessage `json:"node"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(raw, &conn); err != nil {
		return Connection{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if conn.PageInfo == nil {
		return Connection{}, fmt.Errorf("%w: connection has no pageInfo", ErrMalformedResponse)
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	n := 0
	for _, edge := range conn.Edges {
		if isNull(edge.Node) {
			continue
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		buf.Write(edge.Node)
	}
	buf.WriteByte(']')
	if nodes != nil {
		if err := Unmarshal(buf.Bytes(), nodes); err != nil {
			return Connection{}, fmt.Errorf("failed to decode nodes: %w", err)
		}
	}
	return Connection{PageInfo: *conn.PageInfo, TotalCount: conn.TotalCount}, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
