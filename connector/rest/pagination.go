package rest

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/llehouerou/crudl-graphql/types"
)

var errBadPageLink = errors.New("invalid page link")

// Numbered is the pagination of a page-number based list. Next and
// Previous are nil on the last and first page.
type Numbered struct {
	Type     string `json:"type"`
	Count    int    `json:"count"`
	Next     *int   `json:"next"`
	Previous *int   `json:"previous"`
}

// HasNext reports whether there is a next page.
func (n Numbered) HasNext() bool { return n.Next != nil }

// PageArgs returns the arguments requesting the next page, or empty args.
func (n Numbered) PageArgs() types.Args {
	if n.Next == nil {
		return types.Args{}
	}
	return types.NewArgs(PageParam, *n.Next)
}

func numbered(env envelope) (Numbered, error) {
	n := Numbered{Type: types.NumberedPagination, Count: len(env.Results)}
	if env.Count != nil {
		n.Count = *env.Count
	}
	var err error
	if n.Next, err = pageOf(env.Next); err != nil {
		return Numbered{}, err
	}
	if n.Previous, err = pageOf(env.Previous); err != nil {
		return Numbered{}, err
	}
	return n, nil
}

// pageOf extracts the page number of a next or previous link. A link
// without a page parameter is the first page.
func pageOf(link *string) (*int, error) {
	if link == nil || *link == "" {
		return nil, nil
	}
	u, err := url.Parse(*link)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPageLink, err)
	}
	page := 1
	if p := u.Query().Get(PageParam); p != "" {
		if page, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("%w: %q", errBadPageLink, *link)
		}
	}
	return &page, nil
}
