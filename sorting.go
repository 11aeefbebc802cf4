package graphql

import (
	"strings"

	"github.com/llehouerou/crudl-graphql/types"
)

// OrderBy translates a list view sort specification into an orderBy
// argument.
//
// E.g., [{name ascending} {id descending}] -> {orderBy: "name,-id"}.
//
// Only types.Ascending leaves a key unprefixed; any other direction,
// including unknown values, is prefixed with "-". An empty specification
// yields empty args.
func OrderBy(sorting []types.SortField) types.Args {
	if len(sorting) == 0 {
		return types.Args{}
	}
	return types.NewArgs(types.OrderByArg, orderingKeys(sorting))
}

func orderingKeys(sorting []types.SortField) string {
	keys := make([]string, 0, len(sorting))
	for _, field := range sorting {
		prefix := "-"
		if field.Sorted == types.Ascending {
			prefix = ""
		}
		keys = append(keys, prefix+field.SortKey)
	}
	return strings.Join(keys, ",")
}

// OrderingParam is OrderBy's key list on its own, for REST backends that
// take it as a query parameter. It returns "" for an empty specification.
func OrderingParam(sorting []types.SortField) string {
	if len(sorting) == 0 {
		return ""
	}
	return orderingKeys(sorting)
}
