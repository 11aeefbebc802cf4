package types

// Direction is the sort direction reported by a list view column.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// SortField is one entry of a list view's sort specification.
type SortField struct {
	SortKey string    `json:"sortKey" yaml:"sortKey"`
	Sorted  Direction `json:"sorted" yaml:"sorted"`
}

// GraphQLType is implemented by values that know the name of their GraphQL
// input type, e.g. "CreateCategoryInput".
type GraphQLType interface {
	GetGraphQLType() string
}

// Literal is implemented by argument values that must be written into a
// query verbatim instead of as JSON.
type Literal interface {
	GraphQLLiteral() string
}

// Enum is a GraphQL enum value. It is rendered unquoted in arguments.
type Enum string

func (e Enum) GraphQLLiteral() string { return string(e) }

// PageInfo is the pageInfo object of a Relay connection.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}
