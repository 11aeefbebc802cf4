package blog

import (
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/llehouerou/crudl-graphql/types"
)

// Global id kinds.
const (
	KindUser     = "User"
	KindCategory = "Category"
	KindTag      = "Tag"
	KindEntry    = "Entry"
)

// GlobalID returns the Relay global id of the object of kind with id.
func GlobalID(kind string, id int) graphql.ID {
	return relay.MarshalID(kind, id)
}

// LocalID returns the store id encoded in a global id of kind, or 0 if id
// is not such an id.
func LocalID(kind string, id graphql.ID) int {
	if relay.UnmarshalKind(id) != kind {
		return 0
	}
	var n int
	if err := relay.UnmarshalSpec(id, &n); err != nil {
		return 0
	}
	return n
}

func localIDs(kind string, ids []graphql.ID) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, LocalID(kind, id))
	}
	return out
}

// Resolver is the root resolver of Schema.
type Resolver struct {
	store *Store
}

func (r *Resolver) User(args struct{ ID graphql.ID }) *userResolver {
	u, ok := r.store.User(LocalID(KindUser, args.ID))
	if !ok {
		return nil
	}
	return &userResolver{r.store, u}
}

func (r *Resolver) Category(args struct{ ID graphql.ID }) *categoryResolver {
	c, ok := r.store.Category(LocalID(KindCategory, args.ID))
	if !ok {
		return nil
	}
	return &categoryResolver{r.store, c}
}

func (r *Resolver) Tag(args struct{ ID graphql.ID }) *tagResolver {
	t, ok := r.store.Tag(LocalID(KindTag, args.ID))
	if !ok {
		return nil
	}
	return &tagResolver{r.store, t}
}

func (r *Resolver) Entry(args struct{ ID graphql.ID }) *entryResolver {
	e, ok := r.store.Entry(LocalID(KindEntry, args.ID))
	if !ok {
		return nil
	}
	return &entryResolver{r.store, e}
}

type allUsersArgs struct {
	First             *int32
	After             *string
	UsernameIcontains *string
	IsStaff           *bool
	IsActive          *bool
	OrderBy           *string
}

var userOrder = orderKeys[User]{
	"id":         byInt(func(u User) int { return u.ID }),
	"username":   byString(func(u User) string { return u.Username }),
	"isStaff":    byBool(func(u User) bool { return u.IsStaff }),
	"isActive":   byBool(func(u User) bool { return u.IsActive }),
	"dateJoined": byInt(func(u User) int { return int(u.DateJoined.Unix()) }),
}

func (r *Resolver) AllUsers(args allUsersArgs) (*connectionResolver[*userResolver], error) {
	var users []User
	for _, u := range r.store.Users() {
		if !containsFold(u.Username, args.UsernameIcontains) ||
			(args.IsStaff != nil && u.IsStaff != *args.IsStaff) ||
			(args.IsActive != nil && u.IsActive != *args.IsActive) {
			continue
		}
		users = append(users, u)
	}
	return connect(r.store, users, args.OrderBy, userOrder, pageArgs{args.First, args.After},
		func(s *Store, u User) *userResolver { return &userResolver{s, u} })
}

type allCategoriesArgs struct {
	First         *int32
	After         *string
	User          *graphql.ID
	NameIcontains *string
	OrderBy       *string
}

var categoryOrder = orderKeys[Category]{
	"id":       byInt(func(c Category) int { return c.ID }),
	"user":     byInt(func(c Category) int { return c.UserID }),
	"name":     byString(func(c Category) string { return c.Name }),
	"slug":     byString(func(c Category) string { return c.Slug }),
	"position": byInt(func(c Category) int { return int(deref(c.Position)) }),
}

func (r *Resolver) AllCategories(args allCategoriesArgs) (*connectionResolver[*categoryResolver], error) {
	var categories []Category
	for _, c := range r.store.Categories() {
		if !matchID(KindUser, args.User, c.UserID) || !containsFold(c.Name, args.NameIcontains) {
			continue
		}
		categories = append(categories, c)
	}
	return connect(r.store, categories, args.OrderBy, categoryOrder, pageArgs{args.First, args.After},
		func(s *Store, c Category) *categoryResolver { return &categoryResolver{s, c} })
}

type allTagsArgs struct {
	First         *int32
	After         *string
	User          *graphql.ID
	NameIcontains *string
	OrderBy       *string
}

var tagOrder = orderKeys[Tag]{
	"id":   byInt(func(t Tag) int { return t.ID }),
	"user": byInt(func(t Tag) int { return t.UserID }),
	"name": byString(func(t Tag) string { return t.Name }),
	"slug": byString(func(t Tag) string { return t.Slug }),
}

func (r *Resolver) AllTags(args allTagsArgs) (*connectionResolver[*tagResolver], error) {
	var tags []Tag
	for _, t := range r.store.Tags() {
		if !matchID(KindUser, args.User, t.UserID) || !containsFold(t.Name, args.NameIcontains) {
			continue
		}
		tags = append(tags, t)
	}
	return connect(r.store, tags, args.OrderBy, tagOrder, pageArgs{args.First, args.After},
		func(s *Store, t Tag) *tagResolver { return &tagResolver{s, t} })
}

type allEntriesArgs struct {
	First          *int32
	After          *string
	User           *graphql.ID
	TitleIcontains *string
	Category       *graphql.ID
	Tags           *graphql.ID
	Status         *string
	Date           *string
	OrderBy        *string
}

var entryOrder = orderKeys[Entry]{
	"id":       byInt(func(e Entry) int { return e.ID }),
	"title":    byString(func(e Entry) string { return e.Title }),
	"date":     byString(func(e Entry) string { return e.Date }),
	"category": byInt(func(e Entry) int { return e.CategoryID }),
	"status":   byString(func(e Entry) string { return e.Status }),
}

func (r *Resolver) AllEntries(args allEntriesArgs) (*connectionResolver[*entryResolver], error) {
	var entries []Entry
	for _, e := range r.store.Entries() {
		if !matchID(KindUser, args.User, e.UserID) ||
			!containsFold(e.Title, args.TitleIcontains) ||
			!matchID(KindCategory, args.Category, e.CategoryID) ||
			(args.Tags != nil && !hasID(e.TagIDs, LocalID(KindTag, *args.Tags))) ||
			(args.Status != nil && e.Status != *args.Status) ||
			(args.Date != nil && e.Date != *args.Date) {
			continue
		}
		entries = append(entries, e)
	}
	return connect(r.store, entries, args.OrderBy, entryOrder, pageArgs{args.First, args.After},
		func(s *Store, e Entry) *entryResolver { return &entryResolver{s, e} })
}

// connect orders and paginates items and wraps the page in resolvers.
func connect[T any, R any](s *Store, items []T, orderBy *string, keys orderKeys[T], page pageArgs, wrap func(*Store, T) R) (*connectionResolver[R], error) {
	if err := order(items, orderBy, keys); err != nil {
		return nil, err
	}
	w, err := paginate(items, page)
	if err != nil {
		return nil, err
	}
	nodes := make([]R, len(w.items))
	for i, item := range w.items {
		nodes[i] = wrap(s, item)
	}
	return &connectionResolver[R]{window: window[R]{items: nodes, start: w.start, total: w.total}}, nil
}

func matchID(kind string, filter *graphql.ID, id int) bool {
	return filter == nil || *filter == "" || LocalID(kind, *filter) == id
}

func hasID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

type connectionResolver[R any] struct {
	window window[R]
}

func (c *connectionResolver[R]) TotalCount() int32 { return int32(c.window.total) }

func (c *connectionResolver[R]) PageInfo() *pageInfoResolver { return c.window.pageInfo() }

func (c *connectionResolver[R]) Edges() []*edgeResolver[R] {
	edges := make([]*edgeResolver[R], len(c.window.items))
	for i, node := range c.window.items {
		edges[i] = &edgeResolver[R]{cursor: encodeCursor(c.window.start + i), node: node}
	}
	return edges
}

type edgeResolver[R any] struct {
	cursor string
	node   R
}

func (e *edgeResolver[R]) Cursor() string { return e.cursor }
func (e *edgeResolver[R]) Node() R        { return e.node }

type pageInfoResolver struct {
	info types.PageInfo
}

func (p *pageInfoResolver) HasNextPage() bool     { return p.info.HasNextPage }
func (p *pageInfoResolver) HasPreviousPage() bool { return p.info.HasPreviousPage }
func (p *pageInfoResolver) StartCursor() *string  { return p.info.StartCursor }
func (p *pageInfoResolver) EndCursor() *string    { return p.info.EndCursor }

type userResolver struct {
	s *Store
	u User
}

func (r *userResolver) ID() graphql.ID     { return GlobalID(KindUser, r.u.ID) }
func (r *userResolver) Username() string   { return r.u.Username }
func (r *userResolver) FirstName() string  { return r.u.FirstName }
func (r *userResolver) LastName() string   { return r.u.LastName }
func (r *userResolver) Email() string      { return r.u.Email }
func (r *userResolver) IsStaff() bool      { return r.u.IsStaff }
func (r *userResolver) IsActive() bool     { return r.u.IsActive }
func (r *userResolver) DateJoined() string { return r.u.DateJoined.Format(time.RFC3339) }

func resolveUser(s *Store, id int) *userResolver {
	u, ok := s.User(id)
	if !ok {
		return nil
	}
	return &userResolver{s, u}
}

type categoryResolver struct {
	s *Store
	c Category
}

func (r *categoryResolver) ID() graphql.ID      { return GlobalID(KindCategory, r.c.ID) }
func (r *categoryResolver) User() *userResolver { return resolveUser(r.s, r.c.UserID) }
func (r *categoryResolver) Name() string        { return r.c.Name }
func (r *categoryResolver) Slug() string        { return r.c.Slug }
func (r *categoryResolver) Position() *int32    { return r.c.Position }

func (r *categoryResolver) CounterEntries() int32 {
	n := 0
	for _, e := range r.s.Entries() {
		if e.CategoryID == r.c.ID {
			n++
		}
	}
	return int32(n)
}

type tagResolver struct {
	s *Store
	t Tag
}

func (r *tagResolver) ID() graphql.ID      { return GlobalID(KindTag, r.t.ID) }
func (r *tagResolver) User() *userResolver { return resolveUser(r.s, r.t.UserID) }
func (r *tagResolver) Name() string        { return r.t.Name }
func (r *tagResolver) Slug() string        { return r.t.Slug }

func (r *tagResolver) CounterEntries() int32 {
	n := 0
	for _, e := range r.s.Entries() {
		if hasID(e.TagIDs, r.t.ID) {
			n++
		}
	}
	return int32(n)
}

type entryResolver struct {
	s *Store
	e Entry
}

func (r *entryResolver) ID() graphql.ID      { return GlobalID(KindEntry, r.e.ID) }
func (r *entryResolver) User() *userResolver { return resolveUser(r.s, r.e.UserID) }
func (r *entryResolver) Title() string       { return r.e.Title }
func (r *entryResolver) Status() string      { return r.e.Status }
func (r *entryResolver) Date() string        { return r.e.Date }
func (r *entryResolver) Sticky() bool        { return r.e.Sticky }
func (r *entryResolver) Body() string        { return r.e.Body }

func (r *entryResolver) CategoryID() graphql.ID { return GlobalID(KindCategory, r.e.CategoryID) }

func (r *entryResolver) Category() *categoryResolver {
	c, ok := r.s.Category(r.e.CategoryID)
	if !ok {
		return nil
	}
	return &categoryResolver{r.s, c}
}

func (r *entryResolver) Tags() []*tagResolver {
	tags := []*tagResolver{}
	for _, id := range r.e.TagIDs {
		if t, ok := r.s.Tag(id); ok {
			tags = append(tags, &tagResolver{r.s, t})
		}
	}
	return tags
}
