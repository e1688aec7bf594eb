// Package cli provides the marrow command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marrowdb/marrow/internal/loader"
	"github.com/marrowdb/marrow/internal/utils"
	"github.com/marrowdb/marrow/pkg/registry"
)

// options holds the flags shared by every subcommand.
type options struct {
	envFile  string
	logLevel string
	dataset  string
	format   string
}

// setup configures logging and the environment. The dataset path falls
// back to MARROW_DATASET when the flag is not given.
func (o *options) setup() *logrus.Logger {
	logger := utils.SetupLogging(o.logLevel)
	utils.LoadEnvironmentVariables(o.envFile, logger)

	if o.dataset == "" {
		o.dataset = os.Getenv("MARROW_DATASET")
	}
	return logger
}

func (o *options) requireDataset() error {
	if o.dataset == "" {
		return fmt.Errorf("no dataset file given (use --dataset or set MARROW_DATASET)")
	}
	return nil
}

// loadRegistry loads the dataset file and installs it into a fresh registry.
func (o *options) loadRegistry(logger *logrus.Logger) (*registry.Registry, error) {
	if err := o.requireDataset(); err != nil {
		return nil, err
	}

	l := loader.New(logger)
	ds, err := l.Load(o.dataset)
	if err != nil {
		return nil, err
	}

	reg := registry.New(logger)
	if err := l.Apply(ds, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "marrow",
		Short: "An in-memory relational store with typed tables and checked references",
		Long: `Marrow

An in-memory relational store. Tables carry typed, reference-checked
columns; datasets are declared in YAML, filled with literal or generated
rows, and explored with filters and joins.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.envFile, "env-file", "e", ".env", "Path to .env file")
	rootCmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&opts.dataset, "dataset", "d", "", "Path to a YAML dataset file (default: MARROW_DATASET)")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "table", "Output format: table, json, csv, md")

	rootCmd.AddCommand(newDemoCommand(opts))
	rootCmd.AddCommand(newInfoCommand(opts))
	rootCmd.AddCommand(newSeedCommand(opts))
	rootCmd.AddCommand(newQueryCommand(opts))
	rootCmd.AddCommand(newJoinCommand(opts))

	return rootCmd
}
