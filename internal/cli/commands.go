package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	graphql "github.com/llehouerou/crudl-graphql"
	"github.com/llehouerou/crudl-graphql/admin"
	"github.com/llehouerou/crudl-graphql/connector"
	"github.com/llehouerou/crudl-graphql/internal/blog"
	"github.com/llehouerou/crudl-graphql/types"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filters map[string]string
		sort    string
		after   string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "Read one page of a collection's list view",
		Example: `  crudl list categories --sort name
  crudl list entries --filter status=published --page-size 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.descriptor()
			c, ok := d.Collection(args[0])
			if !ok || c.List == nil {
				return fmt.Errorf("unknown collection %q", args[0])
			}

			req := connector.NewRequest().WithPage(types.NewArgs(types.FirstArg, a.cfg.PageSize))
			if after != "" {
				req.Page.Set(types.AfterArg, after)
			}
			for k, v := range filters {
				req.Filters.Set(k, v)
			}
			req.Sorting = ParseSort(sort)

			resp, err := c.List.Do(cmd.Context(), admin.ActionList, req, d.Connectors)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), output, resp)
		},
	}
	f := cmd.Flags()
	f.StringToStringVar(&filters, "filter", nil, "filter argument as key=value (repeatable)")
	f.StringVar(&sort, "sort", "", `sort keys, "-" prefix for descending, e.g. "name,-id"`)
	f.StringVar(&after, "after", "", "cursor of the previous page")
	f.Int("page-size", 0, "number of items per page")
	f.StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "get <path>",
		Short:   "Read the object of a change view, e.g. categories/<id>",
		Example: `  crudl get users/VXNlcjox`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.descriptor()
			v, req, ok := d.Route(args[0])
			if !ok {
				return fmt.Errorf("no view for path %q", args[0])
			}
			resp, err := v.Do(cmd.Context(), admin.ActionGet, req, d.Connectors)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), output, resp)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		validate   bool
		variables  string
	)
	cmd := &cobra.Command{
		Use:   "query <document|->",
		Short: "Run a GraphQL document against the endpoint",
		Long:  `Run a GraphQL document, given inline or as "-" for stdin, and print the data object.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := args[0]
			if doc == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				doc = string(b)
			}

			if validate || schemaPath != "" {
				sdl := blog.Schema
				if schemaPath != "" {
					b, err := os.ReadFile(schemaPath)
					if err != nil {
						return err
					}
					sdl = string(b)
				}
				if err := graphql.ValidateQuery(sdl, doc); err != nil {
					return err
				}
			}

			var vars map[string]any
			if variables != "" {
				if err := json.Unmarshal([]byte(variables), &vars); err != nil {
					return fmt.Errorf("invalid variables: %w", err)
				}
			}
			data, err := a.client().ExecRaw(cmd.Context(), doc, vars)
			if err != nil {
				return err
			}
			var out any
			if err := json.Unmarshal(data, &out); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), "json", out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&schemaPath, "schema", "", "validate the document against this SDL file first")
	f.BoolVar(&validate, "validate", false, "validate the document against the blog schema first")
	f.StringVar(&variables, "variables", "", "variables as a JSON object")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the blog admin descriptor as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := a.descriptor()
			if err := admin.Validate(d); err != nil {
				return err
			}
			out, err := admin.Export(d)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// ParseSort parses a comma separated list of sort keys; a "-" prefix
// sorts descending.
func ParseSort(s string) []types.SortField {
	var fields []types.SortField
	for _, key := range strings.Split(s, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		f := types.SortField{SortKey: key, Sorted: types.Ascending}
		if desc, ok := strings.CutPrefix(key, "-"); ok {
			f = types.SortField{SortKey: desc, Sorted: types.Descending}
		}
		fields = append(fields, f)
	}
	return fields
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toPlain(v)); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// toPlain round-trips v through JSON so YAML sees the JSON field names and
// custom encodings.
func toPlain(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
