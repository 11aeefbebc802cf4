package connector

import (
	"fmt"
	"maps"
)

// Response keys understood by Set.
const (
	DataKey       = "data"
	PaginationKey = "pagination"
)

// Response is what a connector returns to a view.
type Response struct {
	// Data is an Item for object reads and writes, or a []Item for lists.
	Data any `json:"data" yaml:"data"`
	// Pagination describes how to request the next page of a list.
	Pagination any `json:"pagination,omitempty" yaml:"pagination,omitempty"`
	// Meta carries everything else, e.g. totalCount.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Set returns a copy of r with key set to value. "data" and "pagination"
// address the fields of the same name; every other key goes to Meta.
func (r Response) Set(key string, value any) Response {
	switch key {
	case DataKey:
		r.Data = value
	case PaginationKey:
		r.Pagination = value
	default:
		r.Meta = maps.Clone(r.Meta)
		if r.Meta == nil {
			r.Meta = make(map[string]any)
		}
		r.Meta[key] = value
	}
	return r
}

// Item returns the data of an object response.
func (r Response) Item() (Item, error) {
	switch data := r.Data.(type) {
	case Item:
		return data, nil
	case nil:
		return nil, ErrNotFound
	}
	return nil, fmt.Errorf("response data is %T, not an object", r.Data)
}

// Items returns the data of a list response. A nil Data is an empty list.
func Items(r Response) ([]Item, error) {
	switch data := r.Data.(type) {
	case nil:
		return nil, nil
	case []Item:
		return data, nil
	case []any:
		items := make([]Item, 0, len(data))
		for i, v := range data {
			item, ok := v.(Item)
			if !ok {
				return nil, fmt.Errorf("response item %d is %T, not an object", i, v)
			}
			items = append(items, item)
		}
		return items, nil
	}
	return nil, fmt.Errorf("response data is %T, not a list", r.Data)
}
