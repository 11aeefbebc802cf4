package admin

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/crudl-graphql/connector"
)

var users = []connector.Item{
	{"id": "1", "username": "admin"},
	{"id": "2", "username": "bob"},
}

func userConnectors(reads *atomic.Int32) connector.Connectors {
	return connector.Connectors{
		"users": connector.Func{ReadFunc: func(_ context.Context, req *connector.Request) (connector.Response, error) {
			q, _ := req.FilterArgs().Get("usernameIcontains")
			var out []connector.Item
			for _, u := range users {
				if q == nil || u["username"] == q {
					out = append(out, u)
				}
			}
			return connector.Response{Data: out, Meta: map[string]any{"totalCount": len(out)}}, nil
		}},
		"user": connector.Func{ReadFunc: func(_ context.Context, req *connector.Request) (connector.Response, error) {
			if reads != nil {
				reads.Add(1)
			}
			for _, u := range users {
				if u["id"] == req.Param("id") {
					return connector.Response{Data: u}, nil
				}
			}
			return connector.Response{}, connector.ErrNotFound
		}},
	}
}

func listAction(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	cx, err := cxs.Get("users")
	if err != nil {
		return connector.Response{}, err
	}
	return cx.Read(ctx, req)
}

func getAction(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	cx, err := cxs.Get("user")
	if err != nil {
		return connector.Response{}, err
	}
	return cx.Read(ctx, req)
}

var relation = Relation{List: "users", Node: "user", Filter: "usernameIcontains", Value: "id", Label: "username"}

func testDescriptor() Descriptor {
	return Descriptor{
		Title:      "Blog",
		Options:    Options{BasePath: "/crudl/"},
		Connectors: userConnectors(nil),
		Collections: []Collection{{
			Name: "categories",
			List: &View{
				Path:    "categories",
				Title:   "Categories",
				Fields:  []Field{{Name: "name", Label: "Name", Main: true}, {Name: "slug"}},
				Filters: &Filters{Fields: []Field{{Name: "user", Kind: "Select", Behaviors: []Behavior{AsyncOptions{Connector: "users", Value: "id", Label: "username"}}}}},
				Actions: Actions{List: listAction},
			},
			Change: &View{
				Path:  "categories/:id",
				Title: "Category",
				Fields: []Field{
					{Name: "user", Kind: "Autocomplete", Behaviors: []Behavior{Required, relation}},
					{Name: "name", Kind: "String", Behaviors: []Behavior{Required}},
					{Name: "slug", Kind: "String", Behaviors: []Behavior{SlugFrom("name"), Required}},
				},
				Actions: Actions{Get: getAction, Save: getAction, Delete: getAction},
			},
			Add: &View{
				Path:    "categories/new",
				Title:   "New Category",
				Fields:  []Field{{Name: "name", Behaviors: []Behavior{Required}}, {Name: "slug", Behaviors: []Behavior{SlugFrom("name")}}},
				Actions: Actions{Add: getAction},
			},
		}},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(testDescriptor()))
}

func TestValidate_errors(t *testing.T) {
	d := testDescriptor()
	c := d.Collections[0]
	c.Add = &View{
		Path: "categories/:id",
		Fields: []Field{
			{Name: "slug", Behaviors: []Behavior{SlugFrom("title")}},
			{Name: "tags", Behaviors: []Behavior{AsyncOptions{Connector: "tags"}}},
		},
	}
	d.Collections = append(d.Collections, c, Collection{Name: "empty"})

	err := Validate(d)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `duplicate collection "categories"`)
	assert.Contains(t, msg, `categories.add: path "categories/:id" already used by categories.change`)
	assert.Contains(t, msg, `categories.add: no add action`)
	assert.Contains(t, msg, `field "slug" watches unknown field "title"`)
	assert.Contains(t, msg, `collection "empty" has no views`)
	assert.ErrorIs(t, err, connector.ErrUnknownConnector)
}

func TestRoute(t *testing.T) {
	d := testDescriptor()
	tests := []struct {
		path   string
		want   string
		params map[string]any
	}{
		{"categories", "Categories", map[string]any{}},
		{"/categories/", "Categories", map[string]any{}},
		{"categories/new", "New Category", map[string]any{}},
		{"categories/Q2F0ZWdvcnk6NA==", "Category", map[string]any{"id": "Q2F0ZWdvcnk6NA=="}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, req, ok := d.Route(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, v.Title)
			assert.Equal(t, tt.params, req.Params)
		})
	}

	_, _, ok := d.Route("tags")
	assert.False(t, ok)
	_, _, ok = d.Route("categories/1/extra")
	assert.False(t, ok)
}

func TestView_Do(t *testing.T) {
	d := testDescriptor()
	ctx := context.Background()

	v, req, ok := d.Route("categories/2")
	require.True(t, ok)
	resp, err := v.Do(ctx, ActionGet, req, d.Connectors)
	require.NoError(t, err)
	item, err := resp.Item()
	require.NoError(t, err)
	assert.Equal(t, "bob", item["username"])

	_, err = v.Do(ctx, ActionList, req, d.Connectors)
	assert.ErrorIs(t, err, ErrNoAction)
	assert.Equal(t, []string{"get", "save", "delete"}, v.Actions.Names())
}

func TestView_Prepare(t *testing.T) {
	v := testDescriptor().Collections[0].Change

	data, err := v.Prepare(map[string]any{"user": "1", "name": "Release Notes"})
	require.NoError(t, err)
	assert.Equal(t, "release-notes", data["slug"])

	// a slug that is set is kept
	data, err = v.Prepare(map[string]any{"user": "1", "name": "Release Notes", "slug": "notes"})
	require.NoError(t, err)
	assert.Equal(t, "notes", data["slug"])

	in := map[string]any{"name": "  "}
	_, err = v.Prepare(in)
	var verr *connector.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"user": ErrRequired.Error(),
		"name": ErrRequired.Error(),
		"slug": ErrRequired.Error(),
	}, verr.Fields)
	assert.NotContains(t, in, "slug")
}

func TestBehaviorOf(t *testing.T) {
	f := testDescriptor().Collections[0].Change.Fields[2]
	w, ok := WatcherOf(f)
	require.True(t, ok)
	assert.Equal(t, "name", w.Watches())
	assert.Equal(t, "slug(name)", w.Behavior())

	v, ok := ValidatorOf(f)
	require.True(t, ok)
	assert.Equal(t, "required", v.Behavior())

	_, ok = SearcherOf(f)
	assert.False(t, ok)
	_, ok = OptionsFetcherOf(f)
	assert.False(t, ok)
}

func TestAsyncOptions(t *testing.T) {
	opts := AsyncOptions{Connector: "users", Value: "id", Label: "username"}
	resp, err := opts.Options(context.Background(), nil, userConnectors(nil))
	require.NoError(t, err)
	assert.Equal(t, []connector.Item{
		{"value": "1", "label": "admin"},
		{"value": "2", "label": "bob"},
	}, resp.Data)
	assert.Equal(t, 2, resp.Meta["totalCount"])

	_, err = AsyncOptions{Connector: "tags"}.Options(context.Background(), nil, userConnectors(nil))
	assert.ErrorIs(t, err, connector.ErrUnknownConnector)
}

func TestRelation_Search(t *testing.T) {
	req := connector.NewRequest().WithData(map[string]any{"query": "bob"})
	resp, err := relation.Search(context.Background(), req, userConnectors(nil))
	require.NoError(t, err)
	assert.Equal(t, []connector.Item{{"value": "2", "label": "bob"}}, resp.Data)
	_, ok := req.Filters.Get("usernameIcontains")
	assert.False(t, ok, "request was modified")
}

func TestRelation_Select(t *testing.T) {
	var reads atomic.Int32
	cxs := userConnectors(&reads)
	req := connector.NewRequest().WithData(map[string]any{
		"selection": []any{connector.Item{"value": "2", "label": "?"}, "1"},
	})
	resp, err := relation.Select(context.Background(), req, cxs)
	require.NoError(t, err)
	assert.Equal(t, []connector.Item{
		{"value": "2", "label": "bob"},
		{"value": "1", "label": "admin"},
	}, resp.Data)
	assert.EqualValues(t, 2, reads.Load())

	req = connector.NewRequest().WithData(map[string]any{"selection": []any{"1", "9"}})
	_, err = relation.Select(context.Background(), req, cxs)
	assert.ErrorIs(t, err, connector.ErrNotFound)
}

func TestExport(t *testing.T) {
	out, err := Export(testDescriptor())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "title: Blog\n")
	assert.Contains(t, s, "basePath: /crudl/")
	assert.Contains(t, s, "connectors:\n    - user\n    - users\n")
	assert.Contains(t, s, "path: categories/:id")
	assert.Contains(t, s, "actions: [get, save, delete]")
	assert.Contains(t, s, "behaviors: [slug(name), required]")
	assert.Contains(t, s, "behaviors: ['relation(users, user)']")
	assert.Contains(t, s, "behaviors: [options(users)]")
}
