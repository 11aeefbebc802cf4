package graphql

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/llehouerou/crudl-graphql/types"
)

// FieldSpec is the selection requested for each node of a query.
type FieldSpec interface {
	Selection() string
}

// FieldName is a selection given as a single string, e.g. "id, name".
type FieldName string

func (f FieldName) Selection() string { return string(f) }

// FieldNames is a selection given as a list of field names.
type FieldNames []string

func (f FieldNames) Selection() string { return strings.Join(f, ", ") }

func selectionOf(fields FieldSpec) string {
	if fields == nil {
		return ""
	}
	return fields.Selection()
}

// ListParams provides the per-request arguments of a list query.
type ListParams interface {
	PageArgs() types.Args
	FilterArgs() types.Args
	SortFields() []types.SortField
}

// Params is a plain ListParams.
type Params struct {
	Page    types.Args
	Filters types.Args
	Sorting []types.SortField
}

func (p Params) PageArgs() types.Args          { return p.Page }
func (p Params) FilterArgs() types.Args        { return p.Filters }
func (p Params) SortFields() []types.SortField { return p.Sorting }

// ListOptions configures a list query.
type ListOptions struct {
	// Name is the root connection field, e.g. "allCategories".
	Name string
	// Fields is the selection of each node.
	Fields FieldSpec
	// Connection is an optional selection on the connection itself, e.g.
	// "totalCount".
	Connection FieldSpec
	// Args are fixed arguments sent with every request. They have the
	// lowest precedence.
	Args types.Args
}

// ListQueryFunc builds the query for one request.
type ListQueryFunc func(params ListParams) (string, error)

const listQueryFormat = `{
    %s %s {
%s        pageInfo { hasNextPage, hasPreviousPage, startCursor, endCursor }
        edges { node { %s }}
    }
}`

// ListQuery returns a function building a Relay connection query for opts.
//
// Arguments are merged from lowest to highest precedence: opts.Args, the
// page arguments, the filter arguments and finally the orderBy argument
// derived from the sort specification.
func ListQuery(opts ListOptions) ListQueryFunc {
	name := opts.Name
	selection := selectionOf(opts.Fields)
	static := opts.Args.Clone()
	var extra string
	if sel := selectionOf(opts.Connection); sel != "" {
		extra = "        " + sel + "\n"
	}

	return func(params ListParams) (string, error) {
		merged := static
		if params != nil {
			merged = types.MergeArgs(
				static,
				params.PageArgs(),
				params.FilterArgs(),
				OrderBy(params.SortFields()),
			)
		}
		args, err := FormatArgs(merged)
		if err != nil {
			return "", fmt.Errorf("failed to build list query %s: %w", name, err)
		}
		return fmt.Sprintf(listQueryFormat, name, args, extra, selection), nil
	}
}

const nodeQueryFormat = `{
    %s(id: %s) {
        %s
    }
}`

// NodeQueryFunc builds the query reading the object identified by id.
type NodeQueryFunc func(id string) (string, error)

// NodeQuery returns a function building a single-object query, e.g.
// `{ category(id: "Q2F0ZWdvcnk6MQ==") { id, name } }`.
func NodeQuery(name string, fields FieldSpec) NodeQueryFunc {
	selection := selectionOf(fields)
	return func(id string) (string, error) {
		var buf bytes.Buffer
		if err := writeArgumentValue(&buf, id); err != nil {
			return "", fmt.Errorf("failed to build node query %s: %w", name, err)
		}
		return fmt.Sprintf(nodeQueryFormat, name, buf.String(), selection), nil
	}
}
