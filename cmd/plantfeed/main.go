// Package main is the entry point for the plantfeed CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantfeed/plantfeed"
	"github.com/plantfeed/plantfeed/internal/config"
	"github.com/plantfeed/plantfeed/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plantfeed",
		Short: "Equipment CSV ingestion and aggregation",
		Long: `Plantfeed ingests loosely structured equipment CSV files, normalizes them
against a canonical schema and keeps per-batch summary statistics.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables

Environment variables:
  DATA_DIR             Data directory (default: ~/.plantfeed)
  DB_URL               Database URL (default: sqlite:///{data_dir}/plantfeed.db)
  LOG_LEVEL            Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT           Log format: pretty, json (default: pretty)
  RETENTION_LIMIT      Batches kept per owner (default: 5)
  COLUMN_ALIASES_FILE  YAML file with extra column aliases
  ENABLE_RESET         Allow the reset command (default: false)`,
	}

	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(batchesCmd())
	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(equipmentCmd())
	cmd.AddCommand(resetCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// newClient builds a Client from .env file and environment configuration.
func newClient(envFile string) (*plantfeed.Client, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := log.Configure(cfg)
	client, err := plantfeed.New(
		plantfeed.WithConfig(cfg),
		plantfeed.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func closeClient(client *plantfeed.Client, err error) error {
	return errors.Join(err, client.Close())
}

func addEnvFileFlag(cmd *cobra.Command, envFile *string) {
	cmd.Flags().StringVar(envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
}

func addOwnerFlag(cmd *cobra.Command, owner *string) {
	cmd.Flags().StringVar(owner, "owner", "default", "Owner whose data to operate on")
}
