package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marrowdb/marrow/internal/render"
	"github.com/marrowdb/marrow/pkg/query"
)

func newQueryCommand(opts *options) *cobra.Command {
	var (
		tableName string
		selected  []string
		filters   []string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and project the rows of a table",
		Example: `  # All orders
  marrow query -d shop.yaml -t orders

  # Orders above 100, only two columns
  marrow query -d shop.yaml -t orders -w "amount > 100" -s id,amount

  # As JSON
  marrow query -d shop.yaml -t orders -f json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.setup()

			reg, err := opts.loadRegistry(logger)
			if err != nil {
				return err
			}

			t, ok := reg.Lookup(tableName)
			if !ok {
				return fmt.Errorf("table %q not found in dataset", tableName)
			}

			q := query.New(t)
			if len(selected) > 0 {
				q = q.Select(selected...)
			}
			for _, filter := range filters {
				column, operator, value, err := parseFilter(filter)
				if err != nil {
					return err
				}
				q = q.Where(column, operator, value)
			}

			return render.Rows(cmd.OutOrStdout(), selected, q.Execute(), opts.format)
		},
	}

	cmd.Flags().StringVarP(&tableName, "table", "t", "", "Table to query")
	cmd.Flags().StringSliceVarP(&selected, "select", "s", nil, "Columns to keep in the result")
	cmd.Flags().StringArrayVarP(&filters, "where", "w", nil, `Filter of the form "column OP value" (OP: ==, >, <); repeatable`)
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

// parseFilter splits a "column OP value" filter into its parts.
func parseFilter(s string) (string, string, any, error) {
	parts := strings.Fields(s)
	if len(parts) < 3 {
		return "", "", nil, fmt.Errorf("invalid filter %q, want \"column OP value\"", s)
	}

	column := parts[0]
	operator := parts[1]
	switch operator {
	case "==", ">", "<":
	default:
		return "", "", nil, fmt.Errorf("invalid operator %q in filter %q", operator, s)
	}

	return column, operator, parseLiteral(strings.Join(parts[2:], " ")), nil
}

// parseLiteral maps a filter value onto the value kinds rows carry:
// integer, float, bool, then string.
func parseLiteral(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
