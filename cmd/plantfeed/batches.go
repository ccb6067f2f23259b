package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func batchesCmd() *cobra.Command {
	var (
		envFile string
		owner   string
	)

	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List the owner's retained batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatches(cmd, envFile, owner)
		},
	}

	addEnvFileFlag(cmd, &envFile)
	addOwnerFlag(cmd, &owner)
	return cmd
}

func runBatches(cmd *cobra.Command, envFile, owner string) error {
	client, err := newClient(envFile)
	if err != nil {
		return err
	}

	batches, err := client.Batches.List(cmdContext(), owner)
	if err != nil {
		return closeClient(client, err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tUPLOADED\tPROCESSED\tRECORDS")
	for _, b := range batches {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%d\n",
			b.ID(), b.Filename(), b.UploadedAt().Format("2006-01-02 15:04:05"),
			b.Processed(), b.TotalRecords())
	}
	if err := w.Flush(); err != nil {
		return closeClient(client, err)
	}
	return closeClient(client, nil)
}
