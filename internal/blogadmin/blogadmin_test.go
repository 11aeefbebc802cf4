package blogadmin_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/admin"
	"github.com/llehouerou/crudl-graphql/connector"
	"github.com/llehouerou/crudl-graphql/internal/blog"
	"github.com/llehouerou/crudl-graphql/internal/blogadmin"
	"github.com/llehouerou/crudl-graphql/types"
)

func newDescriptor(t *testing.T) (admin.Descriptor, *blog.Store) {
	t.Helper()
	store := blog.NewStore()
	blog.Seed(store)
	srv := httptest.NewServer(blog.Handler(blog.MustNewSchema(store)))
	t.Cleanup(srv.Close)
	return blogadmin.Descriptor(graphql.NewClient(srv.URL, srv.Client()), zerolog.Nop()), store
}

func TestDescriptor_valid(t *testing.T) {
	d, _ := newDescriptor(t)
	require.NoError(t, admin.Validate(d))
	assert.Len(t, d.Collections, 4)
}

func TestDescriptor_exports(t *testing.T) {
	d, _ := newDescriptor(t)
	out, err := admin.Export(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "path: entries/:id")
	assert.Contains(t, string(out), "behaviors: [slug(name)]")
}

func TestCategories_list(t *testing.T) {
	d, _ := newDescriptor(t)
	v, req, ok := d.Route("categories")
	require.True(t, ok)

	req.Sorting = []types.SortField{{SortKey: "name", Sorted: types.Descending}}
	resp, err := v.Do(context.Background(), admin.ActionList, req, d.Connectors)
	require.NoError(t, err)
	items, err := connector.Items(resp)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Travel", items[0]["name"])
	assert.Equal(t, 3, resp.Meta["totalCount"])
	assert.False(t, resp.Pagination.(graphql.Continuation).HasNext())
}

func TestEntries_listJoinsCategories(t *testing.T) {
	d, _ := newDescriptor(t)
	v, req, ok := d.Route("entries")
	require.True(t, ok)

	req.Sorting = []types.SortField{{SortKey: "date", Sorted: types.Ascending}}
	resp, err := v.Do(context.Background(), admin.ActionList, req, d.Connectors)
	require.NoError(t, err)
	items, err := connector.Items(resp)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Hello, World", items[0]["title"])
	category, ok := items[0]["category"].(connector.Item)
	require.True(t, ok, "got %T", items[0]["category"])
	assert.Equal(t, "News", category["name"])

	category, ok = items[1]["category"].(connector.Item)
	require.True(t, ok)
	assert.Equal(t, "How To", category["name"])
}

func TestCategories_addAndChange(t *testing.T) {
	d, store := newDescriptor(t)
	ctx := context.Background()
	admin1 := string(blog.GlobalID(blog.KindUser, 1))

	v, req, ok := d.Route("categories/new")
	require.True(t, ok)
	resp, err := v.Do(ctx, admin.ActionAdd, req.WithData(map[string]any{"user": admin1, "name": "Release Notes"}), d.Connectors)
	require.NoError(t, err)
	item, err := resp.Item()
	require.NoError(t, err)
	assert.Equal(t, "release-notes", item["slug"])
	assert.Len(t, store.Categories(), 4)

	id, _ := item["id"].(string)
	v, req, ok = d.Route("categories/" + id)
	require.True(t, ok)
	resp, err = v.Do(ctx, admin.ActionSave, req.WithData(map[string]any{"user": admin1, "name": "Notes", "slug": "notes"}), d.Connectors)
	require.NoError(t, err)
	item, err = resp.Item()
	require.NoError(t, err)
	assert.Equal(t, "Notes", item["name"])

	// the backend rejects a slug taken by another category of the user
	_, err = v.Do(ctx, admin.ActionSave, req.WithData(map[string]any{"user": admin1, "name": "News"}), d.Connectors)
	var verr *connector.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "Category with this User and Slug already exists.", verr.Fields["_error"])

	// required fields are checked before the backend is called
	_, err = v.Do(ctx, admin.ActionSave, req.WithData(map[string]any{"name": ""}), d.Connectors)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "user")
	assert.Contains(t, verr.Fields, "name")

	_, err = v.Do(ctx, admin.ActionDelete, req, d.Connectors)
	require.NoError(t, err)
	assert.Len(t, store.Categories(), 3)
}

func TestUserRelation(t *testing.T) {
	d, _ := newDescriptor(t)
	c, ok := d.Collection(blogadmin.Categories)
	require.True(t, ok)
	f, ok := c.Change.Field("user")
	require.True(t, ok)
	s, ok := admin.SearcherOf(f)
	require.True(t, ok)
	ctx := context.Background()

	resp, err := s.Search(ctx, connector.NewRequest().WithData(map[string]any{"query": "bo"}), d.Connectors)
	require.NoError(t, err)
	assert.Equal(t, []connector.Item{{"value": string(blog.GlobalID(blog.KindUser, 2)), "label": "bob"}}, resp.Data)

	sel := []any{string(blog.GlobalID(blog.KindUser, 3))}
	resp, err = s.Select(ctx, connector.NewRequest().WithData(map[string]any{"selection": sel}), d.Connectors)
	require.NoError(t, err)
	assert.Equal(t, []connector.Item{{"value": sel[0], "label": "carol"}}, resp.Data)
}
