package types

// Names shared by the query builders, the connectors and the admin
// descriptors. Centralizing these prevents typos and makes refactoring safer.
const (
	// GraphQLTag is the struct tag name used to specify the GraphQL field
	// selected for a struct field, with optional alias and arguments.
	GraphQLTag = "graphql"

	// ScalarTag is the struct tag name used to mark a field as a scalar
	// that should not be expanded into a sub-selection.
	ScalarTag = "scalar"

	// JSONTag is consulted when a struct field has no graphql tag.
	JSONTag = "json"
)

// Argument names understood by Relay-style connection fields.
const (
	OrderByArg = "orderBy"
	FirstArg   = "first"
	AfterArg   = "after"
)

const (
	// NonFieldErrorKey is the key a Django/graphene backend uses for errors
	// that do not belong to a single field.
	NonFieldErrorKey = "__all__"

	// FormErrorKey is the key the admin frontend renders in its generic
	// error slot.
	FormErrorKey = "_error"

	// ContinuousPagination is the pagination type reported for cursor
	// based continuation.
	ContinuousPagination = "continuous"

	// NumberedPagination is the pagination type reported for page number
	// based continuation.
	NumberedPagination = "numbered"
)
