// Package blogadmin is the admin site of the demo blog: users, categories,
// tags and entries backed by the blog's GraphQL API.
package blogadmin

import (
	"context"

	"github.com/rs/zerolog"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/admin"
	"github.com/llehouerou/crudl-graphql/connector"
	"github.com/llehouerou/crudl-graphql/connector/graphqlconn"
	"github.com/llehouerou/crudl-graphql/internal/blog"
)

// Connector names.
const (
	Users      = "users"
	User       = "user"
	Categories = "categories"
	Category   = "category"
	Tags       = "tags"
	Tag        = "tag"
	Entries    = "entries"
	Entry      = "entry"
)

const userSelection = "user { id, username }"

func deleteMutation(name string) *graphql.Mutation {
	return &graphql.Mutation{Name: name, InputType: "DeleteInput", Payload: graphql.FieldName("deleted")}
}

// Connectors returns the blog connectors using client.
func Connectors(client graphqlconn.Executor, logger zerolog.Logger) connector.Connectors {
	list := func(name string, fields graphql.FieldSpec) *graphqlconn.List {
		l := graphqlconn.NewList(client, graphql.ListOptions{
			Name:       name,
			Fields:     fields,
			Connection: graphql.FieldName("totalCount"),
		})
		l.Logger = logger
		return l
	}
	node := func(field string, fields graphql.FieldSpec, typ string) *graphqlconn.Node {
		n := &graphqlconn.Node{
			Client: client,
			Query:  graphql.NodeQuery(field, fields),
			Field:  field,
			Logger: logger,
		}
		if typ == "" {
			return n
		}
		payload := graphql.FieldName(field + " { " + fields.Selection() + " }, errors")
		n.CreateMutation = &graphql.Mutation{Name: "create" + typ, InputType: "Create" + typ + "Input", Payload: payload}
		n.ChangeMutation = &graphql.Mutation{Name: "change" + typ, InputType: "Change" + typ + "Input", Payload: payload}
		n.DeleteMutation = deleteMutation("delete" + typ)
		return n
	}

	userFields := graphql.FieldName("id, username, firstName, lastName, email, isStaff, isActive, dateJoined")
	categoryFields := graphql.FieldName("id, " + userSelection + ", name, slug, position, counterEntries")
	tagFields := graphql.FieldName("id, " + userSelection + ", name, slug, counterEntries")
	entryFields := graphql.FieldName("id, " + userSelection + ", title, status, date, sticky, category { id, name }, tags { id, name }, body")

	return connector.Connectors{
		Users:      list("allUsers", graphql.FieldName("id, username, email, isStaff, isActive")),
		User:       node("user", userFields, ""),
		Categories: list("allCategories", graphql.FieldName("id, name, slug, position, counterEntries")),
		Category:   node("category", categoryFields, "Category"),
		Tags:       list("allTags", graphql.FieldName("id, name, slug, counterEntries")),
		Tag:        node("tag", tagFields, "Tag"),
		// the category id is joined with the categories list
		Entries: list("allEntries", graphql.FieldName("id, title, status, date, sticky, category: categoryId")),
		Entry:   node("entry", entryFields, "Entry"),
	}
}

// Descriptor returns the blog admin site using client.
func Descriptor(client graphqlconn.Executor, logger zerolog.Logger) admin.Descriptor {
	return admin.Descriptor{
		Title:      "crudl.io Blog Admin",
		Options:    admin.Options{BasePath: "/crudl/"},
		Connectors: Connectors(client, logger),
		Collections: []admin.Collection{
			users(),
			named(Categories, Category, "Categories", "Category", categoryFields()),
			named(Tags, Tag, "Tags", "Tag", tagFields()),
			entries(),
		},
	}
}

var userRelation = admin.Relation{
	List:   Users,
	Node:   User,
	Filter: "usernameIcontains",
	Value:  "id",
	Label:  "username",
}

func userField() admin.Field {
	return admin.Field{
		Name:      "user",
		Label:     "User",
		Kind:      "Autocomplete",
		Behaviors: []admin.Behavior{admin.Required, userRelation},
	}
}

func slugField(from string) admin.Field {
	return admin.Field{
		Name:      "slug",
		Label:     "Slug",
		Kind:      "String",
		HelpText:  "If left blank, the slug will be automatically generated.",
		Behaviors: []admin.Behavior{admin.SlugFrom(from)},
	}
}

func users() admin.Collection {
	return admin.Collection{
		Name: Users,
		List: &admin.View{
			Path:  "users",
			Title: "Users",
			Fields: []admin.Field{
				{Name: "username", Label: "Username", Main: true},
				{Name: "email", Label: "Email address"},
				{Name: "isStaff", Label: "Staff member", Kind: "Checkbox"},
				{Name: "isActive", Label: "Active", Kind: "Checkbox"},
			},
			Filters: &admin.Filters{Fields: []admin.Field{
				{Name: "usernameIcontains", Label: "Search", Kind: "Search"},
				{Name: "isStaff", Label: "Staff member", Kind: "RadioGroup"},
				{Name: "isActive", Label: "Active", Kind: "RadioGroup"},
			}},
			Actions: admin.Actions{List: read(Users)},
		},
		Change: &admin.View{
			Path:  "users/:id",
			Title: "User",
			Fields: []admin.Field{
				{Name: "username", Label: "Username", Kind: "String"},
				{Name: "firstName", Label: "First name", Kind: "String"},
				{Name: "lastName", Label: "Last name", Kind: "String"},
				{Name: "email", Label: "Email address", Kind: "String"},
				{Name: "isStaff", Label: "Staff member", Kind: "Checkbox"},
				{Name: "isActive", Label: "Active", Kind: "Checkbox"},
				{Name: "dateJoined", Label: "Date joined", Kind: "Date"},
			},
			Actions: admin.Actions{Get: read(User)},
		},
	}
}

func categoryFields() []admin.Field {
	return []admin.Field{
		userField(),
		{Name: "name", Label: "Name", Kind: "String", Behaviors: []admin.Behavior{admin.Required}},
		slugField("name"),
		{Name: "position", Label: "Position", Kind: "Number"},
	}
}

func tagFields() []admin.Field {
	return []admin.Field{
		userField(),
		{Name: "name", Label: "Name", Kind: "String", Behaviors: []admin.Behavior{admin.Required}},
		slugField("name"),
	}
}

// named builds the collection of a resource with a list connector called
// list and a node connector called node.
func named(list, node, listTitle, title string, fields []admin.Field) admin.Collection {
	change := &admin.View{Path: list + "/:id", Title: title, Fields: fields}
	change.Actions = admin.Actions{
		Get:    read(node),
		Save:   write(node, change, connector.Connector.Update),
		Delete: remove(node),
	}
	add := &admin.View{Path: list + "/new", Title: "New " + title, Fields: fields}
	add.Actions = admin.Actions{Add: write(node, add, connector.Connector.Create)}

	return admin.Collection{
		Name: list,
		List: &admin.View{
			Path:  list,
			Title: listTitle,
			Fields: []admin.Field{
				{Name: "name", Label: "Name", Main: true},
				{Name: "slug", Label: "Slug"},
				{Name: "counterEntries", Label: "No. Entries"},
			},
			Filters: &admin.Filters{Fields: []admin.Field{
				{Name: "nameIcontains", Label: "Search", Kind: "Search"},
				{Name: "user", Label: "User", Kind: "Select", Behaviors: []admin.Behavior{
					admin.AsyncOptions{Connector: Users, Value: "id", Label: "username"},
				}},
			}},
			Actions: admin.Actions{List: read(list)},
		},
		Change: change,
		Add:    add,
	}
}

func entries() admin.Collection {
	fields := []admin.Field{
		userField(),
		{Name: "title", Label: "Title", Kind: "String", Behaviors: []admin.Behavior{admin.Required}},
		{Name: "status", Label: "Status", Kind: "Select", InitialValue: blog.StatusDraft},
		{Name: "date", Label: "Date", Kind: "Date", Behaviors: []admin.Behavior{admin.Required}},
		{Name: "sticky", Label: "Sticky", Kind: "Checkbox"},
		{Name: "category", Label: "Category", Kind: "Select", Behaviors: []admin.Behavior{
			admin.Required,
			admin.AsyncOptions{Connector: Categories, Value: "id", Label: "name"},
		}},
		{Name: "tags", Label: "Tags", Kind: "Autocomplete", Behaviors: []admin.Behavior{
			admin.AsyncOptions{Connector: Tags, Value: "id", Label: "name"},
		}},
		{Name: "body", Label: "Body", Kind: "Textarea"},
	}
	change := &admin.View{Path: "entries/:id", Title: "Entry", Fields: fields}
	change.Actions = admin.Actions{
		Get:    read(Entry),
		Save:   write(Entry, change, connector.Connector.Update),
		Delete: remove(Entry),
	}
	add := &admin.View{Path: "entries/new", Title: "New Entry", Fields: fields}
	add.Actions = admin.Actions{Add: write(Entry, add, connector.Connector.Create)}

	return admin.Collection{
		Name: Entries,
		List: &admin.View{
			Path:  "entries",
			Title: "Entries",
			Fields: []admin.Field{
				{Name: "title", Label: "Title", Main: true},
				{Name: "status", Label: "Status"},
				{Name: "date", Label: "Date"},
				{Name: "sticky", Label: "Sticky"},
				{Name: "category", Label: "Category"},
			},
			Filters: &admin.Filters{Fields: []admin.Field{
				{Name: "titleIcontains", Label: "Search", Kind: "Search"},
				{Name: "status", Label: "Status", Kind: "Select"},
				{Name: "category", Label: "Category", Kind: "Select", Behaviors: []admin.Behavior{
					admin.AsyncOptions{Connector: Categories, Value: "id", Label: "name"},
				}},
			}},
			Actions: admin.Actions{List: listEntries},
		},
		Change: change,
		Add:    add,
	}
}

// listEntries reads a page of entries and replaces each category id with
// the category.
func listEntries(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
	entries, err := cxs.Get(Entries)
	if err != nil {
		return connector.Response{}, err
	}
	categories, err := cxs.Get(Categories)
	if err != nil {
		return connector.Response{}, err
	}
	return connector.Join(ctx,
		connector.Read(entries, req),
		connector.Read(categories, connector.NewRequest()),
		"category", "id", nil,
	)
}

func read(name string) admin.ActionFunc {
	return func(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
		cx, err := cxs.Get(name)
		if err != nil {
			return connector.Response{}, err
		}
		return cx.Read(ctx, req)
	}
}

// write prepares the submitted data with the view's fields and stores it
// with op.
func write(name string, v *admin.View, op func(connector.Connector, context.Context, *connector.Request) (connector.Response, error)) admin.ActionFunc {
	return func(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
		cx, err := cxs.Get(name)
		if err != nil {
			return connector.Response{}, err
		}
		var data map[string]any
		if req != nil {
			data = req.Data
		}
		data, err = v.Prepare(data)
		if err != nil {
			return connector.Response{}, err
		}
		return op(cx, ctx, req.WithData(data))
	}
}

func remove(name string) admin.ActionFunc {
	return func(ctx context.Context, req *connector.Request, cxs connector.Connectors) (connector.Response, error) {
		cx, err := cxs.Get(name)
		if err != nil {
			return connector.Response{}, err
		}
		return cx.Delete(ctx, req)
	}
}
