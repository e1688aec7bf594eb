package cli

import (
	"github.com/spf13/cobra"

	"github.com/marrowdb/marrow/internal/loader"
	"github.com/marrowdb/marrow/internal/utils"
	"github.com/marrowdb/marrow/pkg/registry"
)

func newInfoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Analyze a dataset's tables, references and registration order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.setup()
			if err := opts.requireDataset(); err != nil {
				return err
			}

			l := loader.New(logger)
			ds, err := l.Load(opts.dataset)
			if err != nil {
				return err
			}

			tables, err := l.Build(ds)
			if err != nil {
				return err
			}

			cycles := registry.CircularReferences(tables...)

			// A cyclic declaration set can never be registered, so the
			// order is only computed for clean ones.
			var ordered []string
			if len(cycles) == 0 {
				reg := registry.New(logger)
				if err := reg.RegisterAll(tables...); err != nil {
					return err
				}
				ordered = reg.DependencyOrder()
			}

			utils.PrintSchemaAnalysis(tables, ordered, cycles)
			return nil
		},
	}
}
