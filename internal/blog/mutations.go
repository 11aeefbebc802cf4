package blog

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/llehouerou/crudl-graphql/types"
)

func notFound(kind string) fieldErrors {
	return fieldErrors{types.NonFieldErrorKey: kind + " matching query does not exist."}
}

type createCategoryInput struct {
	User             graphql.ID
	Name             string
	Slug             *string
	Position         *int32
	ClientMutationID *string
}

type changeCategoryInput struct {
	ID               graphql.ID
	User             *graphql.ID
	Name             *string
	Slug             *string
	Position         *int32
	ClientMutationID *string
}

type categoryPayload struct {
	category         *categoryResolver
	errors           []string
	clientMutationID *string
}

func (p *categoryPayload) Category() *categoryResolver { return p.category }
func (p *categoryPayload) Errors() *[]string           { return errorList(p.errors) }
func (p *categoryPayload) ClientMutationID() *string   { return p.clientMutationID }

func (r *Resolver) CreateCategory(args struct{ Input createCategoryInput }) *categoryPayload {
	in := args.Input
	c := Category{
		UserID:   LocalID(KindUser, in.User),
		Name:     in.Name,
		Slug:     deref(in.Slug),
		Position: in.Position,
	}
	saved, errs := r.store.SaveCategory(c)
	if errs != nil {
		return &categoryPayload{errors: errs.flatten(), clientMutationID: in.ClientMutationID}
	}
	return &categoryPayload{category: &categoryResolver{r.store, saved}, clientMutationID: in.ClientMutationID}
}

func (r *Resolver) ChangeCategory(args struct{ Input changeCategoryInput }) *categoryPayload {
	in := args.Input
	c, ok := r.store.Category(LocalID(KindCategory, in.ID))
	if !ok {
		return &categoryPayload{errors: notFound(KindCategory).flatten(), clientMutationID: in.ClientMutationID}
	}
	if in.User != nil {
		c.UserID = LocalID(KindUser, *in.User)
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Slug != nil {
		c.Slug = *in.Slug
	}
	if in.Position != nil {
		c.Position = in.Position
	}
	saved, errs := r.store.SaveCategory(c)
	if errs != nil {
		// the unchanged category is returned along with the errors
		orig, _ := r.store.Category(c.ID)
		return &categoryPayload{category: &categoryResolver{r.store, orig}, errors: errs.flatten(), clientMutationID: in.ClientMutationID}
	}
	return &categoryPayload{category: &categoryResolver{r.store, saved}, clientMutationID: in.ClientMutationID}
}

type createTagInput struct {
	User             graphql.ID
	Name             string
	Slug             *string
	ClientMutationID *string
}

type changeTagInput struct {
	ID               graphql.ID
	User             *graphql.ID
	Name             *string
	Slug             *string
	ClientMutationID *string
}

type tagPayload struct {
	tag              *tagResolver
	errors           []string
	clientMutationID *string
}

func (p *tagPayload) Tag() *tagResolver         { return p.tag }
func (p *tagPayload) Errors() *[]string         { return errorList(p.errors) }
func (p *tagPayload) ClientMutationID() *string { return p.clientMutationID }

func (r *Resolver) CreateTag(args struct{ Input createTagInput }) *tagPayload {
	in := args.Input
	saved, errs := r.store.SaveTag(Tag{UserID: LocalID(KindUser, in.User), Name: in.Name, Slug: deref(in.Slug)})
	if errs != nil {
		return &tagPayload{errors: errs.flatten(), clientMutationID: in.ClientMutationID}
	}
	return &tagPayload{tag: &tagResolver{r.store, saved}, clientMutationID: in.ClientMutationID}
}

func (r *Resolver) ChangeTag(args struct{ Input changeTagInput }) *tagPayload {
	in := args.Input
	t, ok := r.store.Tag(LocalID(KindTag, in.ID))
	if !ok {
		return &tagPayload{errors: notFound(KindTag).flatten(), clientMutationID: in.ClientMutationID}
	}
	if in.User != nil {
		t.UserID = LocalID(KindUser, *in.User)
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Slug != nil {
		t.Slug = *in.Slug
	}
	saved, errs := r.store.SaveTag(t)
	if errs != nil {
		orig, _ := r.store.Tag(t.ID)
		return &tagPayload{tag: &tagResolver{r.store, orig}, errors: errs.flatten(), clientMutationID: in.ClientMutationID}
	}
	return &tagPayload{tag: &tagResolver{r.store, saved}, clientMutationID: in.ClientMutationID}
}

type createEntryInput struct {
	User             graphql.ID
	Title            string
	Date             string
	Status           *string
	Sticky           *bool
	Category         graphql.ID
	Tags             *[]graphql.ID
	Body             *string
	ClientMutationID *string
}

type changeEntryInput struct {
	ID               graphql.ID
	User             *graphql.ID
	Title            *string
	Date             *string
	Status           *string
	Sticky           *bool
	Category         *graphql.ID
	Tags             *[]graphql.ID
	Body             *string
	ClientMutationID *string
}

type entryPayload struct {
	entry            *entryResolver
	errors           []string
	clientMutationID *string
}

func (p *entryPayload) Entry() *entryResolver     { return p.entry }
func (p *entryPayload) Errors() *[]string         { return errorList(p.errors) }
func (p *entryPayload) ClientMutationID() *string { return p.clientMutationID }

func (r *Resolver) CreateEntry(args struct{ Input createEntryInput }) *entryPayload {
	in := args.Input
	e := Entry{
		UserID:     LocalID(KindUser, in.User),
		Title:      in.Title,
		Date:       in.Date,
		Status:     deref(in.Status),
		Sticky:     deref(in.Sticky),
		CategoryID: LocalID(KindCategory, in.Category),
		Body:       deref(in.Body),
	}
	if in.Tags != nil {
		e.TagIDs = localIDs(KindTag, *in.Tags)
	}
	saved, errs := r.store.SaveEntry(e)
	if errs != nil {
		return &entryPayload{errors: errs.flatten(), clientMutationID: in.ClientMutationID}
	}
	return &entryPayload{entry: &entryResolver{r.store, saved}, clientMutationID: in.ClientMutationID}
}

func (r *Resolver) ChangeEntry(args struct{ Input changeEntryInput }) *entryPayload {
	in := args.Input
	e, ok := r.store.Entry(LocalID(KindEntry, in.ID))
	if !ok {
		return &entryPayload{errors: notFound(KindEntry).flatten(), clientMutationID: in.ClientMutationID}
	}
	if in.User != nil {
		e.UserID = LocalID(KindUser, *in.User)
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Sticky != nil {
		e.Sticky = *in.Sticky
	}
	if in.Category != nil {
		e.CategoryID = LocalID(KindCategory, *in.Category)
	}
	if in.Tags != nil {
		e.TagIDs = localIDs(KindTag, *in.Tags)
	}
	if in.Body != nil {
		e.Body = *in.Body
	}
	saved, errs := r.store.SaveEntry(e)
	if errs != nil {
		orig, _ := r.store.Entry(e.ID)
		return &entryPayload{entry: &entryResolver{r.store, orig}, errors: errs.flatten(), clientMutationID: in.ClientMutationID}
	}
	return &entryPayload{entry: &entryResolver{r.store, saved}, clientMutationID: in.ClientMutationID}
}

type deleteInput struct {
	ID               graphql.ID
	ClientMutationID *string
}

type deletePayload struct {
	deleted          bool
	clientMutationID *string
}

func (p *deletePayload) Deleted() bool             { return p.deleted }
func (p *deletePayload) ClientMutationID() *string { return p.clientMutationID }

func (r *Resolver) DeleteCategory(args struct{ Input deleteInput }) *deletePayload {
	ok := r.store.DeleteCategory(LocalID(KindCategory, args.Input.ID))
	return &deletePayload{deleted: ok, clientMutationID: args.Input.ClientMutationID}
}

func (r *Resolver) DeleteTag(args struct{ Input deleteInput }) *deletePayload {
	ok := r.store.DeleteTag(LocalID(KindTag, args.Input.ID))
	return &deletePayload{deleted: ok, clientMutationID: args.Input.ClientMutationID}
}

func (r *Resolver) DeleteEntry(args struct{ Input deleteInput }) *deletePayload {
	ok := r.store.DeleteEntry(LocalID(KindEntry, args.Input.ID))
	return &deletePayload{deleted: ok, clientMutationID: args.Input.ClientMutationID}
}

func errorList(errs []string) *[]string {
	if len(errs) == 0 {
		return nil
	}
	return &errs
}
