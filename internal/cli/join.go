package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marrowdb/marrow/internal/render"
	"github.com/marrowdb/marrow/pkg/query"
)

func newJoinCommand(opts *options) *cobra.Command {
	var (
		left  string
		right string
		on    string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join two tables on a pair of columns",
		Long: `Joins every row of the left table with every matching row of the
right table. Right-hand columns whose names already exist on the left
are prefixed with the right table's name.`,
		Example: `  marrow join -d shop.yaml --left orders --right users --on user_id=id`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.setup()

			parts := strings.SplitN(on, "=", 2)
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return fmt.Errorf("invalid --on value %q, want \"leftColumn=rightColumn\"", on)
			}

			reg, err := opts.loadRegistry(logger)
			if err != nil {
				return err
			}

			lt, ok := reg.Lookup(left)
			if !ok {
				return fmt.Errorf("table %q not found in dataset", left)
			}
			rt, ok := reg.Lookup(right)
			if !ok {
				return fmt.Errorf("table %q not found in dataset", right)
			}

			rows := query.Join(lt, rt, parts[0], parts[1])
			return render.Rows(cmd.OutOrStdout(), nil, rows, opts.format)
		},
	}

	cmd.Flags().StringVar(&left, "left", "", "Left table")
	cmd.Flags().StringVar(&right, "right", "", "Right table")
	cmd.Flags().StringVar(&on, "on", "", `Join condition "leftColumn=rightColumn"`)
	_ = cmd.MarkFlagRequired("left")
	_ = cmd.MarkFlagRequired("right")
	_ = cmd.MarkFlagRequired("on")

	return cmd
}
