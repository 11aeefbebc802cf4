package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/llehouerou/crudl-graphql/pkg/jsonutil"
	"github.com/llehouerou/crudl-graphql/types"
)

var (
	// ErrMalformedResponse is returned when a response does not have the
	// shape of a connection query result.
	ErrMalformedResponse = jsonutil.ErrMalformedResponse

	// ErrAmbiguousRoot is returned when no root field name is given and the
	// response has more than one root field.
	ErrAmbiguousRoot = jsonutil.ErrAmbiguousRoot
)

// Cursor is the argument set requesting the page after a connection.
// After is nil when the server reported a next page without an end cursor.
type Cursor struct {
	After *string `json:"after"`
}

// Continuation tells the admin frontend whether there is a next page and
// how to request it. Next is nil when the last page has been read.
//
// It encodes as {"type":"continuous","next":false} or
// {"type":"continuous","next":{"after":"<cursor>"}}, with "after" null if
// the cursor is unknown.
type Continuation struct {
	Type string
	Next *Cursor
}

// HasNext reports whether there is a next page.
func (c Continuation) HasNext() bool { return c.Next != nil }

// PageArgs returns the arguments requesting the next page, or empty args.
func (c Continuation) PageArgs() types.Args {
	if c.Next == nil {
		return types.Args{}
	}
	var after any
	if c.Next.After != nil {
		after = *c.Next.After
	}
	return types.NewArgs(types.AfterArg, after)
}

func (c Continuation) MarshalJSON() ([]byte, error) {
	var next any = false
	if c.Next != nil {
		next = c.Next
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Next any    `json:"next"`
	}{c.Type, next})
}

func (c *Continuation) UnmarshalJSON(data []byte) error {
	var out struct {
		Type string          `json:"type"`
		Next json.RawMessage `json:"next"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	c.Type = out.Type
	c.Next = nil
	next := bytes.TrimSpace(out.Next)
	if len(next) == 0 || bytes.Equal(next, []byte("false")) || bytes.Equal(next, []byte("null")) {
		return nil
	}
	var cur Cursor
	if err := json.Unmarshal(next, &cur); err != nil {
		return fmt.Errorf("invalid continuation cursor: %w", err)
	}
	c.Next = &cur
	return nil
}

// ContinueFrom derives the continuation for a connection's pageInfo.
// A next page with a null endCursor continues with {"after": null}.
func ContinueFrom(info types.PageInfo) Continuation {
	c := Continuation{Type: types.ContinuousPagination}
	if !info.HasNextPage {
		return c
	}
	c.Next = &Cursor{}
	if info.EndCursor != nil {
		after := *info.EndCursor
		c.Next.After = &after
	}
	return c
}

// Continue derives the continuation from the data object of a connection
// query result, e.g. {"allCategories": {"pageInfo": {...}, "edges": [...]}}.
//
// root names the connection field. If root is empty the data object must
// have exactly one field, which is used.
func Continue(data []byte, root string) (Continuation, error) {
	raw, err := jsonutil.RootField(data, root)
	if err != nil {
		return Continuation{}, err
	}
	var conn struct {
		PageInfo *types.PageInfo `json:"pageInfo"`
	}
	if err := json.Unmarshal(raw, &conn); err != nil {
		return Continuation{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if conn.PageInfo == nil {
		return Continuation{}, fmt.Errorf("%w: connection has no pageInfo", ErrMalformedResponse)
	}
	return ContinueFrom(*conn.PageInfo), nil
}

// ContinueResponse is Continue for a complete response body
// {"data": {...}}.
func ContinueResponse(body []byte, root string) (Continuation, error) {
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return Continuation{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return Continue(out.Data, root)
}
