// Package admin describes an admin site declaratively: collections of
// list, change and add views, the fields they show and the actions that
// load and store their data through connectors.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/llehouerou/crudl-graphql/connector"
)

// ErrNoAction is returned when a view does not define the requested action.
var ErrNoAction = errors.New("view has no such action")

// ActionFunc loads or stores the data of a view.
type ActionFunc func(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error)

// Action names.
const (
	ActionGet    = "get"
	ActionList   = "list"
	ActionSave   = "save"
	ActionAdd    = "add"
	ActionDelete = "delete"
)

// Actions are the operations a view supports. Nil actions are not
// supported.
type Actions struct {
	Get    ActionFunc
	List   ActionFunc
	Save   ActionFunc
	Add    ActionFunc
	Delete ActionFunc
}

func (a Actions) byName(name string) ActionFunc {
	switch name {
	case ActionGet:
		return a.Get
	case ActionList:
		return a.List
	case ActionSave:
		return a.Save
	case ActionAdd:
		return a.Add
	case ActionDelete:
		return a.Delete
	}
	return nil
}

// Names returns the names of the defined actions.
func (a Actions) Names() []string {
	var names []string
	for _, name := range []string{ActionGet, ActionList, ActionSave, ActionAdd, ActionDelete} {
		if a.byName(name) != nil {
			names = append(names, name)
		}
	}
	return names
}

// Field is a form field, list column or filter.
type Field struct {
	Name  string
	Label string
	// Kind names the frontend widget, e.g. "String", "Select" or
	// "Autocomplete".
	Kind string
	// Main marks the column linking to the change view.
	Main     bool
	HelpText string
	// InitialValue is the value of the field in an empty form.
	InitialValue any
	// Behaviors attach validation, watching, options and search to the
	// field.
	Behaviors []Behavior
}

// Filters are the filter fields of a list view.
type Filters struct {
	Fields []Field
}

// View is a single admin page.
type View struct {
	// Path is the page path; segments starting with ":" are parameters,
	// e.g. "categories/:id".
	Path    string
	Title   string
	Fields  []Field
	Filters *Filters
	Actions Actions
}

// Field returns the field called name.
func (v *View) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Do runs the action called name.
func (v *View) Do(ctx context.Context, name string, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	fn := v.Actions.byName(name)
	if fn == nil {
		return connector.Response{}, fmt.Errorf("%s %s: %w", v.Path, name, ErrNoAction)
	}
	return fn(ctx, req, cxs)
}

// Match reports whether path matches the view's path and returns the path
// parameters.
//
// E.g., "categories/:id" matches "categories/Q2F0ZWdvcnk6NA==" with
// {id: "Q2F0ZWdvcnk6NA=="}.
func (v *View) Match(path string) (map[string]any, bool) {
	want := strings.Split(strings.Trim(v.Path, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return nil, false
	}
	params := map[string]any{}
	for i, seg := range want {
		switch {
		case strings.HasPrefix(seg, ":"):
			if got[i] == "" {
				return nil, false
			}
			params[seg[1:]] = got[i]
		case seg != got[i]:
			return nil, false
		}
	}
	return params, true
}

// Collection groups the views of one resource.
type Collection struct {
	Name   string
	List   *View
	Change *View
	Add    *View
}

// Views returns the defined views keyed by kind ("list", "change", "add")
// in that order.
func (c Collection) Views() []NamedView {
	var views []NamedView
	for _, nv := range []NamedView{{"list", c.List}, {"change", c.Change}, {"add", c.Add}} {
		if nv.View != nil {
			views = append(views, nv)
		}
	}
	return views
}

// NamedView is a view with its kind within a collection.
type NamedView struct {
	Kind string
	View *View
}

// Options configure the admin frontend.
type Options struct {
	Debug    bool
	BasePath string
	BaseURL  string
}

// Descriptor is a complete admin site.
type Descriptor struct {
	Title       string
	Options     Options
	Connectors  connector.Connectors
	Collections []Collection
}

// Collection returns the collection called name.
func (d *Descriptor) Collection(name string) (Collection, bool) {
	for _, c := range d.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// Route finds the view serving path and returns a request carrying its
// path parameters.
func (d *Descriptor) Route(path string) (*View, *connector.Request, bool) {
	for _, c := range d.Collections {
		// add views ("categories/new") take precedence over change views
		// ("categories/:id")
		for _, v := range []*View{c.Add, c.List, c.Change} {
			if v == nil {
				continue
			}
			if params, ok := v.Match(path); ok {
				return v, &connector.Request{Params: params}, true
			}
		}
	}
	return nil, nil, false
}
