package connector

import (
	"context"
	"maps"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/crudl-graphql/internal/reflectutil"
)

// Pending is a response that is still being computed, typically a bound
// connector call:
//
//	users := func(ctx context.Context) (Response, error) { return cxs["users"].Read(ctx, req) }
type Pending func(ctx context.Context) (Response, error)

// Read binds cx.Read to req.
func Read(cx Connector, req *Request) Pending {
	return func(ctx context.Context) (Response, error) {
		return cx.Read(ctx, req)
	}
}

// Join resolves the references in field var1 of the items of p1 against
// the items of p2.
//
// p1 and p2 run concurrently. The result is p1's response in which the
// var1 field of every item is replaced by the first item of p2 whose var2
// field equals it, or by defaultValue if there is none. A nil defaultValue
// stands for an empty Item. Numbers match their string form, so a user id
// 5 matches "5".
//
// If either call fails, its error is returned as is and the context of
// the other call is cancelled. Neither response is modified.
func Join(ctx context.Context, p1, p2 Pending, var1, var2 string, defaultValue any) (Response, error) {
	var r1, r2 Response
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r1, err = p1(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		r2, err = p2(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Response{}, err
	}

	items, err := Items(r1)
	if err != nil {
		return Response{}, err
	}
	targets, err := Items(r2)
	if err != nil {
		return Response{}, err
	}

	joined := make([]Item, len(items))
	for i, item := range items {
		c := maps.Clone(item)
		if c == nil {
			c = Item{}
		}
		c[var1] = lookup(targets, var2, item[var1], defaultValue)
		joined[i] = c
	}
	return r1.Set(DataKey, joined), nil
}

func lookup(targets []Item, key string, value any, defaultValue any) any {
	for _, t := range targets {
		if v, ok := t[key]; ok && LooseEqual(v, value) {
			return maps.Clone(t)
		}
	}
	if defaultValue == nil {
		return Item{}
	}
	return defaultValue
}

// LooseEqual reports whether a and b are equal, treating a number and a
// string holding the same number as equal.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	na, aNum := reflectutil.NumberValue(a)
	nb, bNum := reflectutil.NumberValue(b)
	switch {
	case aNum && bNum:
		return na == nb
	case aNum:
		return numericString(b, na)
	case bNum:
		return numericString(a, nb)
	}
	return reflect.DeepEqual(a, b)
}

func numericString(v any, n float64) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return n == 0
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == n
}
