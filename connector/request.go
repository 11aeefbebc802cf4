package connector

import (
	"fmt"
	"maps"
	"slices"

	"github.com/llehouerou/crudl-graphql/types"
)

// Request is what a view passes to a connector.
//
// The derivation methods (With, Filter, WithData, WithPage) return a copy
// and leave the receiver unchanged, so a view can fan out several requests
// from the one it received.
type Request struct {
	// Page holds the pagination arguments, e.g. {first: 20, after: "..."}.
	Page types.Args
	// Filters holds the list filters.
	Filters types.Args
	// Sorting is the list view's sort specification.
	Sorting []types.SortField
	// Params holds the path parameters, e.g. {id: "Q2F0ZWdvcnk6MQ=="}.
	Params map[string]any
	// Data is the submitted form data or, for search and select actions,
	// the action's input.
	Data map[string]any
}

// NewRequest returns an empty request.
func NewRequest() *Request {
	return &Request{}
}

// clone copies r. A nil r yields an empty request.
func (r *Request) clone() *Request {
	if r == nil {
		return &Request{}
	}
	return &Request{
		Page:    r.Page.Clone(),
		Filters: r.Filters.Clone(),
		Sorting: slices.Clone(r.Sorting),
		Params:  maps.Clone(r.Params),
		Data:    maps.Clone(r.Data),
	}
}

// With returns a copy of r with the path parameter key set to value.
func (r *Request) With(key string, value any) *Request {
	c := r.clone()
	if c.Params == nil {
		c.Params = make(map[string]any)
	}
	c.Params[key] = value
	return c
}

// Filter returns a copy of r with the filter key set to value.
func (r *Request) Filter(key string, value any) *Request {
	c := r.clone()
	c.Filters.Set(key, value)
	return c
}

// WithData returns a copy of r carrying data.
func (r *Request) WithData(data map[string]any) *Request {
	c := r.clone()
	c.Data = maps.Clone(data)
	return c
}

// WithPage returns a copy of r with the page arguments replaced by page.
func (r *Request) WithPage(page types.Args) *Request {
	c := r.clone()
	c.Page = page.Clone()
	return c
}

// Param returns the path parameter key formatted as a string, or "" if it
// is not set.
func (r *Request) Param(key string) string {
	if r == nil {
		return ""
	}
	v, ok := r.Params[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// PageArgs implements graphql.ListParams.
func (r *Request) PageArgs() types.Args {
	if r == nil {
		return types.Args{}
	}
	return r.Page
}

// FilterArgs implements graphql.ListParams.
func (r *Request) FilterArgs() types.Args {
	if r == nil {
		return types.Args{}
	}
	return r.Filters
}

// SortFields implements graphql.ListParams.
func (r *Request) SortFields() []types.SortField {
	if r == nil {
		return nil
	}
	return r.Sorting
}
