package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marrowdb/marrow/internal/seeder"
	"github.com/marrowdb/marrow/internal/utils"
)

func newSeedCommand(opts *options) *cobra.Command {
	var (
		records    int
		minRecords int
		verify     bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a dataset's tables with generated rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.setup()

			// Flag wins over environment
			if !cmd.Flags().Changed("records") {
				records = utils.GetEnvInt("MARROW_RECORDS", records)
			}

			reg, err := opts.loadRegistry(logger)
			if err != nil {
				return err
			}

			logger.Info("Starting table population...")
			s := seeder.New(reg, logger)
			counts := s.PopulateAll(records)

			utils.PrintSeedSummary(reg.DependencyOrder(), counts, records)

			if verify {
				success, emptyTables, partiallyPopulatedTables := utils.VerifyTablePopulation(reg, minRecords, logger)
				utils.PrintVerificationResults(emptyTables, partiallyPopulatedTables, minRecords)
				if !success {
					return fmt.Errorf("verification failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&records, "records", "r", 10, "Number of records to generate per table")
	cmd.Flags().IntVarP(&minRecords, "min-records", "n", 1, "Minimum number of records each table should have for verification")
	cmd.Flags().BoolVarP(&verify, "verify", "v", false, "Verify that all tables have been populated with the expected number of records")

	return cmd
}
