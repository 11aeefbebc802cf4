// Package blog is a small in-memory blog backend served over GraphQL. It
// mirrors the Relay API the admin descriptors are written against: users,
// categories, tags and entries exposed as connections, node lookups by
// global id and create/change/delete mutations reporting field errors.
package blog

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/llehouerou/crudl-graphql/admin"
	"github.com/llehouerou/crudl-graphql/types"
)

// Entry statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type User struct {
	ID         int
	Username   string
	FirstName  string
	LastName   string
	Email      string
	IsStaff    bool
	IsActive   bool
	DateJoined time.Time
}

type Category struct {
	ID       int
	UserID   int
	Name     string
	Slug     string
	Position *int32
}

type Tag struct {
	ID     int
	UserID int
	Name   string
	Slug   string
}

type Entry struct {
	ID         int
	UserID     int
	Title      string
	Status     string
	Date       string
	Sticky     bool
	CategoryID int
	TagIDs     []int
	Body       string
}

// fieldErrors maps a field, or "__all__", to a message.
type fieldErrors map[string]string

// flatten returns the errors as [field, message, ...] sorted by field.
func (e fieldErrors) flatten() []string {
	if len(e) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, e[k])
	}
	return out
}

const (
	msgRequired = "This field cannot be blank."
	msgNoUser   = "Select a valid user."
)

// Store holds the blog objects. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	nextID     int
	users      []User
	categories []Category
	tags       []Tag
	entries    []Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

// AddUser stores u with a fresh id and returns it.
func (s *Store) AddUser(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id()
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}
	s.users = append(s.users, u)
	return u
}

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.categories...)
}

func (s *Store) Tags() []Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Tag(nil), s.tags...)
}

func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		e.TagIDs = append([]int(nil), e.TagIDs...)
		out[i] = e
	}
	return out
}

func (s *Store) User(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.users, func(u User) bool { return u.ID == id })
}

func (s *Store) Category(id int) (Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.categories, func(c Category) bool { return c.ID == id })
}

func (s *Store) Tag(id int) (Tag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.tags, func(t Tag) bool { return t.ID == id })
}

func (s *Store) Entry(id int) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := find(s.entries, func(e Entry) bool { return e.ID == id })
	e.TagIDs = append([]int(nil), e.TagIDs...)
	return e, ok
}

// SaveCategory validates c and stores it, assigning an id to new
// categories. An empty slug is derived from the name.
func (s *Store) SaveCategory(c Category) (Category, fieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Name = strings.TrimSpace(c.Name)
	if c.Slug == "" {
		c.Slug = admin.Slugify(c.Name)
	}
	errs := fieldErrors{}
	s.checkUser(errs, c.UserID)
	if c.Name == "" {
		errs["name"] = msgRequired
	}
	if _, dup := find(s.categories, func(o Category) bool {
		return o.ID != c.ID && o.UserID == c.UserID && o.Slug == c.Slug
	}); dup {
		errs[types.NonFieldErrorKey] = "Category with this User and Slug already exists."
	}
	if len(errs) > 0 {
		return c, errs
	}
	s.categories = upsert(s.categories, &c, s.id, func(o Category) int { return o.ID }, func(o *Category, id int) { o.ID = id })
	return c, nil
}

// SaveTag validates t and stores it.
func (s *Store) SaveTag(t Tag) (Tag, fieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Name = strings.TrimSpace(t.Name)
	if t.Slug == "" {
		t.Slug = admin.Slugify(t.Name)
	}
	errs := fieldErrors{}
	s.checkUser(errs, t.UserID)
	if t.Name == "" {
		errs["name"] = msgRequired
	}
	if _, dup := find(s.tags, func(o Tag) bool {
		return o.ID != t.ID && o.UserID == t.UserID && o.Slug == t.Slug
	}); dup {
		errs[types.NonFieldErrorKey] = "Tag with this User and Slug already exists."
	}
	if len(errs) > 0 {
		return t, errs
	}
	s.tags = upsert(s.tags, &t, s.id, func(o Tag) int { return o.ID }, func(o *Tag, id int) { o.ID = id })
	return t, nil
}

// SaveEntry validates e and stores it.
func (s *Store) SaveEntry(e Entry) (Entry, fieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.Title = strings.TrimSpace(e.Title)
	if e.Status == "" {
		e.Status = StatusDraft
	}
	errs := fieldErrors{}
	s.checkUser(errs, e.UserID)
	if e.Title == "" {
		errs["title"] = msgRequired
	}
	if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
		errs["date"] = "Enter a valid date."
	}
	if e.Status != StatusDraft && e.Status != StatusPublished {
		errs["status"] = "Select a valid choice."
	}
	if _, ok := find(s.categories, func(c Category) bool { return c.ID == e.CategoryID }); !ok {
		errs["category"] = "Select a valid category."
	}
	for _, id := range e.TagIDs {
		if _, ok := find(s.tags, func(t Tag) bool { return t.ID == id }); !ok {
			errs["tags"] = "Select a valid tag."
		}
	}
	if len(errs) > 0 {
		return e, errs
	}
	s.entries = upsert(s.entries, &e, s.id, func(o Entry) int { return o.ID }, func(o *Entry, id int) { o.ID = id })
	return e, nil
}

func (s *Store) DeleteCategory(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.categories, ok = remove(s.categories, func(c Category) bool { return c.ID == id })
	return ok
}

func (s *Store) DeleteTag(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.tags, ok = remove(s.tags, func(t Tag) bool { return t.ID == id })
	return ok
}

func (s *Store) DeleteEntry(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.entries, ok = remove(s.entries, func(e Entry) bool { return e.ID == id })
	return ok
}

func (s *Store) checkUser(errs fieldErrors, id int) {
	if _, ok := find(s.users, func(u User) bool { return u.ID == id }); !ok {
		errs["user"] = msgNoUser
	}
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// upsert replaces the item with the id of v, or appends v with a new id
// when its id is zero.
func upsert[T any](items []T, v *T, next func() int, idOf func(T) int, setID func(*T, int)) []T {
	id := idOf(*v)
	if id != 0 {
		for i := range items {
			if idOf(items[i]) == id {
				items[i] = *v
				return items
			}
		}
	}
	setID(v, next())
	return append(items, *v)
}

func remove[T any](items []T, match func(T) bool) ([]T, bool) {
	for i, item := range items {
		if match(item) {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
