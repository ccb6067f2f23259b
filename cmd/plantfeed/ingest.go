package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	var (
		envFile string
		owner   string
	)

	cmd := &cobra.Command{
		Use:   "ingest <file.csv>",
		Short: "Ingest an equipment CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(envFile, owner, args[0])
		},
	}

	addEnvFileFlag(cmd, &envFile)
	addOwnerFlag(cmd, &owner)
	return cmd
}

func runIngest(envFile, owner, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	client, err := newClient(envFile)
	if err != nil {
		return err
	}

	outcome, err := client.Ingest.Ingest(cmdContext(), data, owner, filepath.Base(path))
	if err != nil {
		return closeClient(client, err)
	}

	fmt.Printf("Ingested %s as batch %d\n", outcome.Filename, outcome.BatchID)
	fmt.Printf("  created: %d\n", outcome.Created)
	fmt.Printf("  updated: %d\n", outcome.Updated)
	fmt.Printf("  total:   %d\n", outcome.TotalRecords)
	printSummary(outcome.Summary)

	return closeClient(client, nil)
}
