// Package graphqlconn implements connectors backed by a Relay-style GraphQL
// API: List reads connections, Node reads single objects and runs the
// create, change and delete mutations of a resource.
package graphqlconn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/connector"
	"github.com/llehouerou/crudl-graphql/pkg/jsonutil"
)

// Executor runs a GraphQL document and returns the data object of the
// response. *graphql.Client implements it.
type Executor interface {
	ExecRaw(ctx context.Context, query string, variables map[string]any) ([]byte, error)
}

// List reads a Relay connection, e.g. allCategories.
type List struct {
	connector.Unsupported

	Client Executor
	Query  graphql.ListQueryFunc
	// Root is the connection field of the response. When empty, the single
	// root field of the response is used.
	Root   string
	Logger zerolog.Logger
}

// NewList returns a List reading the connection opts.Name.
func NewList(client Executor, opts graphql.ListOptions) *List {
	return &List{
		Client: client,
		Query:  graphql.ListQuery(opts),
		Root:   opts.Name,
		Logger: zerolog.Nop(),
	}
}

// Read returns the nodes of the requested page as []connector.Item, with
// a graphql.Continuation as pagination and the connection's totalCount,
// when selected, under the "totalCount" meta key.
func (l *List) Read(ctx context.Context, req *connector.Request) (connector.Response, error) {
	query, err := l.Query(req)
	if err != nil {
		return connector.Response{}, err
	}
	data, err := l.Client.ExecRaw(ctx, query, nil)
	if err != nil {
		return connector.Response{}, err
	}

	items := []connector.Item{}
	conn, err := jsonutil.UnmarshalConnection(data, l.Root, &items)
	if err != nil {
		return connector.Response{}, fmt.Errorf("failed to read %s: %w", l.Root, err)
	}
	next := graphql.ContinueFrom(conn.PageInfo)
	if next.HasNext() && next.Next.After == nil {
		l.Logger.Warn().Str("root", l.Root).Msg("next page reported without endCursor")
	}
	l.Logger.Debug().Str("root", l.Root).Int("items", len(items)).Bool("next", next.HasNext()).Msg("read connection")

	resp := connector.Response{Data: items, Pagination: next}
	if conn.TotalCount != nil {
		resp = resp.Set("totalCount", *conn.TotalCount)
	}
	return resp, nil
}

// Node reads and writes single objects of one type, e.g. category.
//
// Mutations follow the Relay ClientIDMutation convention: the payload holds
// the object under Field, a flat [field, message, ...] list under "errors"
// and, for deletions, a "deleted" flag.
type Node struct {
	Client Executor
	// Query reads an object by id. Its root field is Field.
	Query graphql.NodeQueryFunc
	// Field is the object field of queries and mutation payloads.
	Field string

	CreateMutation *graphql.Mutation
	ChangeMutation *graphql.Mutation
	DeleteMutation *graphql.Mutation

	Logger zerolog.Logger
}

// IDParam is the request parameter holding the object id.
const IDParam = "id"

// Read returns the object identified by the "id" parameter.
func (n *Node) Read(ctx context.Context, req *connector.Request) (connector.Response, error) {
	if n.Query == nil {
		return connector.Response{}, connector.ErrUnsupported
	}
	id := req.Param(IDParam)
	if id == "" {
		return connector.Response{}, fmt.Errorf("read %s: missing id", n.Field)
	}
	query, err := n.Query(id)
	if err != nil {
		return connector.Response{}, err
	}
	data, err := n.Client.ExecRaw(ctx, query, nil)
	if err != nil {
		return connector.Response{}, err
	}
	item, err := decodeItem(data, n.Field)
	if err != nil {
		return connector.Response{}, fmt.Errorf("read %s %s: %w", n.Field, id, err)
	}
	return connector.Response{Data: item}, nil
}

// Create runs CreateMutation with the request data as input.
func (n *Node) Create(ctx context.Context, req *connector.Request) (connector.Response, error) {
	return n.save(ctx, n.CreateMutation, dataOf(req))
}

// Update runs ChangeMutation with the request data and the "id"
// parameter as input.
func (n *Node) Update(ctx context.Context, req *connector.Request) (connector.Response, error) {
	input := dataOf(req)
	if id := req.Param(IDParam); id != "" {
		input[IDParam] = id
	}
	return n.save(ctx, n.ChangeMutation, input)
}

// Delete runs DeleteMutation for the "id" parameter.
func (n *Node) Delete(ctx context.Context, req *connector.Request) (connector.Response, error) {
	if n.DeleteMutation == nil {
		return connector.Response{}, connector.ErrUnsupported
	}
	id := req.Param(IDParam)
	if id == "" {
		return connector.Response{}, fmt.Errorf("delete %s: missing id", n.Field)
	}
	payload, err := n.mutate(ctx, n.DeleteMutation, map[string]any{IDParam: id})
	if err != nil {
		return connector.Response{}, err
	}
	var deleted bool
	if raw, ok := payload["deleted"]; ok {
		if err := json.Unmarshal(raw, &deleted); err != nil {
			return connector.Response{}, fmt.Errorf("%s: %w", n.DeleteMutation.Name, jsonutil.ErrMalformedResponse)
		}
	}
	if !deleted {
		return connector.Response{}, fmt.Errorf("%s %s: %w", n.DeleteMutation.Name, id, connector.ErrNotFound)
	}
	n.Logger.Info().Str("mutation", n.DeleteMutation.Name).Str("id", id).Msg("deleted")
	return connector.Response{Data: connector.Item{IDParam: id}}, nil
}

func (n *Node) save(ctx context.Context, m *graphql.Mutation, input map[string]any) (connector.Response, error) {
	if m == nil {
		return connector.Response{}, connector.ErrUnsupported
	}
	payload, err := n.mutate(ctx, m, input)
	if err != nil {
		return connector.Response{}, err
	}

	var errs []string
	if raw, ok := payload["errors"]; ok {
		if err := json.Unmarshal(raw, &errs); err != nil {
			return connector.Response{}, fmt.Errorf("%s: errors: %w", m.Name, jsonutil.ErrMalformedResponse)
		}
	}
	if len(errs) > 0 {
		n.Logger.Debug().Str("mutation", m.Name).Strs("errors", errs).Msg("mutation rejected")
		return connector.Response{}, &connector.ValidationError{Fields: connector.FieldErrors(errs)}
	}

	var item connector.Item
	if raw, ok := payload[n.Field]; ok {
		if err := jsonutil.Unmarshal(raw, &item); err != nil {
			return connector.Response{}, fmt.Errorf("%s: %s: %w", m.Name, n.Field, err)
		}
	}
	return connector.Response{Data: item}, nil
}

// mutate runs m and returns the fields of its payload.
func (n *Node) mutate(ctx context.Context, m *graphql.Mutation, input map[string]any) (map[string]json.RawMessage, error) {
	query, variables, err := m.Build(input)
	if err != nil {
		return nil, err
	}
	data, err := n.Client.ExecRaw(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	raw, err := jsonutil.RootField(data, m.Name)
	if err != nil {
		return nil, err
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, jsonutil.ErrMalformedResponse)
	}
	return payload, nil
}

func decodeItem(data []byte, field string) (connector.Item, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", jsonutil.ErrMalformedResponse, err)
	}
	raw, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: missing root field %s", jsonutil.ErrMalformedResponse, field)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, connector.ErrNotFound
	}
	var item connector.Item
	if err := jsonutil.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return item, nil
}

func dataOf(req *connector.Request) map[string]any {
	out := map[string]any{}
	if req != nil {
		for k, v := range req.Data {
			out[k] = v
		}
	}
	return out
}
