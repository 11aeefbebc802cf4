package blog_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/internal/blog"
	"github.com/llehouerou/crudl-graphql/pkg/jsonutil"
	"github.com/llehouerou/crudl-graphql/types"
)

func newClient(t *testing.T) (*graphql.Client, *blog.Store) {
	t.Helper()
	store := blog.NewStore()
	blog.Seed(store)
	schema, err := blog.NewSchema(store)
	require.NoError(t, err)
	srv := httptest.NewServer(blog.Handler(schema))
	t.Cleanup(srv.Close)
	return graphql.NewClient(srv.URL, srv.Client()), store
}

type category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	User *struct {
		Username string `json:"username"`
	} `json:"user"`
}

func TestAllCategories_pages(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()
	query := graphql.ListQuery(graphql.ListOptions{
		Name:   "allCategories",
		Fields: graphql.MustStructFields(category{}),
	})
	params := graphql.Params{
		Page:    types.NewArgs("first", 2),
		Sorting: []types.SortField{{SortKey: "name", Sorted: types.Ascending}},
	}

	q, err := query(params)
	require.NoError(t, err)
	data, err := client.ExecRaw(ctx, q, nil)
	require.NoError(t, err)

	var page []category
	conn, err := jsonutil.UnmarshalConnection(data, "allCategories", &page)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "How To", page[0].Name)
	assert.Equal(t, "how-to", page[0].Slug)
	assert.Equal(t, "News", page[1].Name)
	assert.Equal(t, "admin", page[1].User.Username)
	assert.True(t, conn.PageInfo.HasNextPage)

	next, err := graphql.Continue(data, "allCategories")
	require.NoError(t, err)
	require.True(t, next.HasNext())

	params.Page = types.MergeArgs(params.Page, next.PageArgs())
	q, err = query(params)
	require.NoError(t, err)
	data, err = client.ExecRaw(ctx, q, nil)
	require.NoError(t, err)

	page = nil
	_, err = jsonutil.UnmarshalConnection(data, "", &page)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Travel", page[0].Name)

	last, err := graphql.Continue(data, "")
	require.NoError(t, err)
	assert.False(t, last.HasNext())
}

func TestAllEntries_filtersAndTotalCount(t *testing.T) {
	client, _ := newClient(t)
	admin := blog.GlobalID(blog.KindUser, 1)

	q := `{ allEntries(user: "` + string(admin) + `", orderBy: "-date") { totalCount pageInfo { hasNextPage } edges { node { title tags { name } } } } }`
	data, err := client.ExecRaw(context.Background(), q, nil)
	require.NoError(t, err)

	var entries []struct {
		Title string
		Tags  []struct{ Name string }
	}
	conn, err := jsonutil.UnmarshalConnection(data, "allEntries", &entries)
	require.NoError(t, err)
	require.NotNil(t, conn.TotalCount)
	assert.Equal(t, 2, *conn.TotalCount)
	require.Len(t, entries, 2)
	assert.Equal(t, "Relay connections", entries[0].Title)
	assert.Len(t, entries[0].Tags, 2)
	assert.Equal(t, "Hello, World", entries[1].Title)
}

func TestAllUsers_badOrder(t *testing.T) {
	client, _ := newClient(t)
	_, err := client.ExecRaw(context.Background(), `{ allUsers(orderBy: "password") { totalCount } }`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot order by "password"`)
}

func TestNodeLookup(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	var out struct {
		Tag *struct {
			Name           string `json:"name"`
			CounterEntries int    `json:"counterEntries"`
		} `json:"tag"`
	}
	q := `{ tag(id: "` + string(blog.GlobalID(blog.KindTag, 7)) + `") { name counterEntries } }`
	require.NoError(t, client.Exec(ctx, q, &out, nil))
	require.NotNil(t, out.Tag)
	assert.Equal(t, "Go", out.Tag.Name)
	assert.Equal(t, 2, out.Tag.CounterEntries)

	// an id of another kind resolves to null
	out.Tag = nil
	q = `{ tag(id: "` + string(blog.GlobalID(blog.KindCategory, 7)) + `") { name } }`
	require.NoError(t, client.Exec(ctx, q, &out, nil))
	assert.Nil(t, out.Tag)
}

func TestMutations(t *testing.T) {
	client, store := newClient(t)
	ctx := context.Background()
	admin := string(blog.GlobalID(blog.KindUser, 1))

	create := graphql.Mutation{
		Name:      "createCategory",
		InputType: "CreateCategoryInput",
		Payload:   graphql.FieldName("category { id, name, slug }, errors, clientMutationId"),
	}
	q, vars, err := create.Build(map[string]any{"user": admin, "name": "Release Notes"})
	require.NoError(t, err)
	data, err := client.ExecRaw(ctx, q, vars)
	require.NoError(t, err)

	var created struct {
		CreateCategory struct {
			Category *category
			Errors   []string
		}
	}
	require.NoError(t, json.Unmarshal(data, &created))
	require.NotNil(t, created.CreateCategory.Category)
	assert.Equal(t, "release-notes", created.CreateCategory.Category.Slug)
	assert.Empty(t, created.CreateCategory.Errors)
	assert.Len(t, store.Categories(), 4)

	// same slug for the same user
	q, vars, err = create.Build(map[string]any{"user": admin, "name": "release notes"})
	require.NoError(t, err)
	data, err = client.ExecRaw(ctx, q, vars)
	require.NoError(t, err)
	created.CreateCategory.Category = nil
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Nil(t, created.CreateCategory.Category)
	assert.Equal(t, []string{"__all__", "Category with this User and Slug already exists."}, created.CreateCategory.Errors)

	del := graphql.Mutation{Name: "deleteCategory", InputType: "DeleteInput", Payload: graphql.FieldName("deleted")}
	id := string(blog.GlobalID(blog.KindCategory, 6))
	q, vars, err = del.Build(map[string]any{"id": id})
	require.NoError(t, err)
	data, err = client.ExecRaw(ctx, q, vars)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleteCategory": {"deleted": true}}`, string(data))

	data, err = client.ExecRaw(ctx, q, vars)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleteCategory": {"deleted": false}}`, string(data))
}

func TestChangeEntry_validation(t *testing.T) {
	client, store := newClient(t)
	change := graphql.Mutation{
		Name:      "changeEntry",
		InputType: "ChangeEntryInput",
		Payload:   graphql.FieldName("entry { title }, errors"),
	}
	q, vars, err := change.Build(map[string]any{
		"id":     string(blog.GlobalID(blog.KindEntry, 10)),
		"title":  "",
		"status": "archived",
	})
	require.NoError(t, err)
	data, err := client.ExecRaw(context.Background(), q, vars)
	require.NoError(t, err)
	assert.JSONEq(t, `{"changeEntry": {
		"entry": {"title": "Hello, World"},
		"errors": ["status", "Select a valid choice.", "title", "This field cannot be blank."]
	}}`, string(data))

	e, ok := store.Entry(10)
	require.True(t, ok)
	assert.Equal(t, "Hello, World", e.Title)
}

func TestSchemaValidates(t *testing.T) {
	q := `{ allTags(first: 1) { totalCount pageInfo { endCursor } edges { node { id name } } } }`
	assert.NoError(t, graphql.ValidateQuery(blog.Schema, q))
	assert.Error(t, graphql.ValidateQuery(blog.Schema, `{ allTags { nope } }`))
}

func TestAllTags_afterPastEnd(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()
	q := `query ($after: String) { allTags(first: 2, after: $after) { pageInfo { hasNextPage, endCursor } edges { node { name } } } }`

	for _, offset := range []string{"2", "3", "9223372036854775807"} {
		cursor := base64.StdEncoding.EncodeToString([]byte("arrayconnection:" + offset))
		data, err := client.ExecRaw(ctx, q, map[string]any{"after": cursor})
		require.NoError(t, err, offset)
		assert.JSONEq(t, `{"allTags": {"pageInfo": {"hasNextPage": false, "endCursor": null}, "edges": []}}`, string(data), offset)
	}
}
