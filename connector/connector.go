// Package connector defines the contract between admin views and backends:
// a Request built by a view, a Response returned by a backend and the
// Connector interface that turns one into the other.
package connector

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnsupported is returned by connectors for operations they do not
	// implement, e.g. Create on a list connector.
	ErrUnsupported = errors.New("operation not supported by connector")

	// ErrNotFound is returned when the requested object does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrUnknownConnector is returned by Connectors.Get for a name that is
	// not registered.
	ErrUnknownConnector = errors.New("unknown connector")
)

// Item is a single object as exchanged with the admin frontend.
type Item = map[string]any

// Connector reads and writes the objects of one backend resource.
type Connector interface {
	Read(ctx context.Context, req *Request) (Response, error)
	Create(ctx context.Context, req *Request) (Response, error)
	Update(ctx context.Context, req *Request) (Response, error)
	Delete(ctx context.Context, req *Request) (Response, error)
}

// Connectors maps connector names, as referenced by views, to connectors.
type Connectors map[string]Connector

// Get returns the connector registered under name.
func (c Connectors) Get(name string) (Connector, error) {
	cx, ok := c[name]
	if !ok || cx == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConnector, name)
	}
	return cx, nil
}

// Names returns the registered names in sorted order.
func (c Connectors) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unsupported implements every Connector method by returning
// ErrUnsupported. Embed it to implement a subset of the operations.
type Unsupported struct{}

func (Unsupported) Read(context.Context, *Request) (Response, error) {
	return Response{}, ErrUnsupported
}

func (Unsupported) Create(context.Context, *Request) (Response, error) {
	return Response{}, ErrUnsupported
}

func (Unsupported) Update(context.Context, *Request) (Response, error) {
	return Response{}, ErrUnsupported
}

func (Unsupported) Delete(context.Context, *Request) (Response, error) {
	return Response{}, ErrUnsupported
}

// Func adapts plain functions to a Connector. Nil functions return
// ErrUnsupported.
type Func struct {
	ReadFunc   func(ctx context.Context, req *Request) (Response, error)
	CreateFunc func(ctx context.Context, req *Request) (Response, error)
	UpdateFunc func(ctx context.Context, req *Request) (Response, error)
	DeleteFunc func(ctx context.Context, req *Request) (Response, error)
}

func (f Func) Read(ctx context.Context, req *Request) (Response, error) {
	return call(ctx, f.ReadFunc, req)
}

func (f Func) Create(ctx context.Context, req *Request) (Response, error) {
	return call(ctx, f.CreateFunc, req)
}

func (f Func) Update(ctx context.Context, req *Request) (Response, error) {
	return call(ctx, f.UpdateFunc, req)
}

func (f Func) Delete(ctx context.Context, req *Request) (Response, error) {
	return call(ctx, f.DeleteFunc, req)
}

func call(ctx context.Context, fn func(context.Context, *Request) (Response, error), req *Request) (Response, error) {
	if fn == nil {
		return Response{}, ErrUnsupported
	}
	return fn(ctx, req)
}
