package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// ValidateQuery checks query against the schema given in SDL form.
func ValidateQuery(schemaSDL, query string) error {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	if _, errs := gqlparser.LoadQuery(schema, query); len(errs) > 0 {
		return fmt.Errorf("invalid query: %w", errs)
	}
	return nil
}
