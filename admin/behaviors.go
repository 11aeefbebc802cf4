package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/crudl-graphql/connector"
)

// Behavior is a capability attached to a field. The capabilities are the
// interfaces embedding Behavior: Validator, Watcher, OptionsFetcher and
// Searcher.
type Behavior interface {
	// Behavior names the capability, e.g. "required" or "slug(name)".
	Behavior() string
}

// Validator checks the value of a field.
type Validator interface {
	Behavior
	Validate(value any) error
}

// Watcher derives the initial value of a field from another field.
type Watcher interface {
	Behavior
	Watches() string
	InitialValue(watched any) any
}

// OptionsFetcher loads the choices of a select field.
type OptionsFetcher interface {
	Behavior
	Options(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error)
}

// Searcher backs an autocomplete field: Search finds choices for the
// query in req.Data["query"] and Select resolves the values in
// req.Data["selection"] to choices.
type Searcher interface {
	Behavior
	Search(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error)
	Select(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error)
}

// ConnectorUser is implemented by behaviors that call connectors. The
// names are checked by Validate.
type ConnectorUser interface {
	ConnectorNames() []string
}

// BehaviorOf returns the first behavior of f implementing T.
func BehaviorOf[T Behavior](f Field) (T, bool) {
	for _, b := range f.Behaviors {
		if t, ok := b.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func ValidatorOf(f Field) (Validator, bool)           { return BehaviorOf[Validator](f) }
func WatcherOf(f Field) (Watcher, bool)               { return BehaviorOf[Watcher](f) }
func OptionsFetcherOf(f Field) (OptionsFetcher, bool) { return BehaviorOf[OptionsFetcher](f) }
func SearcherOf(f Field) (Searcher, bool)             { return BehaviorOf[Searcher](f) }

// Validate runs every validator of f on value and returns the first
// failure.
func (f Field) Validate(value any) error {
	for _, b := range f.Behaviors {
		if v, ok := b.(Validator); ok {
			if err := v.Validate(value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Prepare fills empty watching fields of data from the fields they watch
// and validates the result. It returns a copy of data, and a
// *connector.ValidationError listing the failing fields.
func (v *View) Prepare(data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(data))
	for k, val := range data {
		out[k] = val
	}
	for _, f := range v.Fields {
		w, ok := WatcherOf(f)
		if !ok || !isBlank(out[f.Name]) {
			continue
		}
		if watched, ok := out[w.Watches()]; ok {
			out[f.Name] = w.InitialValue(watched)
		}
	}

	fields := map[string]string{}
	for _, f := range v.Fields {
		if err := f.Validate(out[f.Name]); err != nil {
			fields[f.Name] = err.Error()
		}
	}
	if len(fields) > 0 {
		return out, connector.NewValidationError(fields)
	}
	return out, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// ErrRequired is returned by Required for blank values.
var ErrRequired = errors.New("This field is required.") //nolint:staticcheck // shown to users as is

type required struct{}

// Required rejects nil and blank string values.
var Required Validator = required{}

func (required) Behavior() string { return "required" }

func (required) Validate(value any) error {
	if isBlank(value) {
		return ErrRequired
	}
	return nil
}

type slugWatcher struct {
	field string
}

// SlugFrom derives the initial value of a slug field from field.
func SlugFrom(field string) Watcher {
	return slugWatcher{field: field}
}

func (w slugWatcher) Behavior() string { return "slug(" + w.field + ")" }
func (w slugWatcher) Watches() string  { return w.field }

func (w slugWatcher) InitialValue(watched any) any {
	if watched == nil {
		return ""
	}
	return Slugify(fmt.Sprint(watched))
}

// Choice keys of options and search results.
const (
	ValueKey = "value"
	LabelKey = "label"
)

// AsyncOptions loads select choices from a list connector.
type AsyncOptions struct {
	// Connector is the name of the list connector.
	Connector string
	// Value and Label are the item keys of the choice value and label.
	Value string
	Label string
}

func (o AsyncOptions) Behavior() string         { return "options(" + o.Connector + ")" }
func (o AsyncOptions) ConnectorNames() []string { return []string{o.Connector} }

// Options returns the choices as items with "value" and "label" keys.
func (o AsyncOptions) Options(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	cx, err := cxs.Get(o.Connector)
	if err != nil {
		return connector.Response{}, err
	}
	resp, err := cx.Read(ctx, req)
	if err != nil {
		return connector.Response{}, err
	}
	return choices(resp, o.Value, o.Label)
}

// Relation searches and resolves related objects for autocomplete fields,
// e.g. the user of a category.
type Relation struct {
	// List is the connector searched, Node the connector reading one
	// object by id.
	List string
	Node string
	// Filter is the list filter receiving the search query.
	Filter string
	// Value and Label are the item keys of the choice value and label.
	Value string
	Label string
}

func (r Relation) Behavior() string         { return "relation(" + r.List + ", " + r.Node + ")" }
func (r Relation) ConnectorNames() []string { return []string{r.List, r.Node} }

// Search reads the list connector filtered by req.Data["query"].
func (r Relation) Search(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	cx, err := cxs.Get(r.List)
	if err != nil {
		return connector.Response{}, err
	}
	var query any
	if req != nil {
		query = req.Data["query"]
	}
	resp, err := cx.Read(ctx, req.Filter(r.Filter, query))
	if err != nil {
		return connector.Response{}, err
	}
	return choices(resp, r.Value, r.Label)
}

// Select reads each object of req.Data["selection"], a list of choices or
// plain values, concurrently.
func (r Relation) Select(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	cx, err := cxs.Get(r.Node)
	if err != nil {
		return connector.Response{}, err
	}
	var selection []any
	if req != nil {
		selection, _ = req.Data["selection"].([]any)
	}

	out := make([]connector.Item, len(selection))
	g, ctx := errgroup.WithContext(ctx)
	for i, sel := range selection {
		value := sel
		if item, ok := sel.(connector.Item); ok {
			value = item[ValueKey]
		}
		g.Go(func() error {
			resp, err := cx.Read(ctx, req.With("id", value))
			if err != nil {
				return err
			}
			item, err := resp.Item()
			if err != nil {
				return err
			}
			out[i] = choice(item, r.Value, r.Label)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return connector.Response{}, err
	}
	return connector.Response{Data: out}, nil
}

func choices(resp connector.Response, value, label string) (connector.Response, error) {
	items, err := connector.Items(resp)
	if err != nil {
		return connector.Response{}, err
	}
	out := make([]connector.Item, len(items))
	for i, item := range items {
		out[i] = choice(item, value, label)
	}
	return resp.Set(connector.DataKey, out), nil
}

func choice(item connector.Item, value, label string) connector.Item {
	return connector.Item{ValueKey: item[value], LabelKey: item[label]}
}
