package blog

import (
	"cmp"
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/llehouerou/crudl-graphql/types"
)

const cursorPrefix = "arrayconnection:"

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(string(b), cursorPrefix))
	if err != nil || !strings.HasPrefix(string(b), cursorPrefix) || offset < 0 {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	return offset, nil
}

// pageArgs are the forward pagination arguments of every connection.
type pageArgs struct {
	First *int32
	After *string
}

// window is one page of a connection.
type window[T any] struct {
	items []T
	start int
	total int
}

// paginate cuts the page described by args out of items.
func paginate[T any](items []T, args pageArgs) (window[T], error) {
	start := 0
	if args.After != nil && *args.After != "" {
		offset, err := decodeCursor(*args.After)
		if err != nil {
			return window[T]{}, err
		}
		start = len(items)
		if offset < len(items) {
			start = offset + 1
		}
	}
	end := len(items)
	if args.First != nil {
		if *args.First < 0 {
			return window[T]{}, fmt.Errorf("first must be non-negative")
		}
		end = min(start+int(*args.First), len(items))
	}
	return window[T]{items: items[start:end], start: start, total: len(items)}, nil
}

func (w window[T]) pageInfo() *pageInfoResolver {
	info := types.PageInfo{
		HasNextPage:     w.start+len(w.items) < w.total,
		HasPreviousPage: w.start > 0,
	}
	if len(w.items) > 0 {
		first, last := encodeCursor(w.start), encodeCursor(w.start+len(w.items)-1)
		info.StartCursor, info.EndCursor = &first, &last
	}
	return &pageInfoResolver{info}
}

// orderKeys maps the orderBy keys of a type to comparisons.
type orderKeys[T any] map[string]func(a, b T) int

// order sorts items by the comma separated keys of orderBy; a key prefixed
// with "-" sorts descending. Items are kept in id order by default.
func order[T any](items []T, orderBy *string, keys orderKeys[T]) error {
	if orderBy == nil || *orderBy == "" {
		return nil
	}
	var cmps []func(a, b T) int
	for _, key := range strings.Split(*orderBy, ",") {
		key = strings.TrimSpace(key)
		desc := strings.HasPrefix(key, "-")
		key = strings.TrimPrefix(key, "-")
		c, ok := keys[key]
		if !ok {
			return fmt.Errorf("cannot order by %q", key)
		}
		if desc {
			asc := c
			c = func(a, b T) int { return -asc(a, b) }
		}
		cmps = append(cmps, c)
	}
	slices.SortStableFunc(items, func(a, b T) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	})
	return nil
}

func byInt[T any](f func(T) int) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(f(a), f(b)) }
}

func byString[T any](f func(T) string) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(strings.ToLower(f(a)), strings.ToLower(f(b))) }
}

func byBool[T any](f func(T) bool) func(a, b T) int {
	return func(a, b T) int {
		x, y := f(a), f(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
}

func containsFold(s string, sub *string) bool {
	return sub == nil || strings.Contains(strings.ToLower(s), strings.ToLower(*sub))
}
