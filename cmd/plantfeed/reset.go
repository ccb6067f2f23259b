package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var (
		envFile string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all batches, equipment and summaries",
		Long: `Delete all batches, equipment, summaries and stored artifacts for every
owner. Requires ENABLE_RESET=true in the environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe data without --yes")
			}
			return runReset(envFile)
		},
	}

	addEnvFileFlag(cmd, &envFile)
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the wipe")
	return cmd
}

func runReset(envFile string) error {
	client, err := newClient(envFile)
	if err != nil {
		return err
	}

	counts, err := client.Admin.Reset(cmdContext())
	if err != nil {
		return closeClient(client, err)
	}

	fmt.Printf("Deleted %d batches, %d equipment rows, %d summaries\n",
		counts.Batches, counts.Equipment, counts.Summaries)
	return closeClient(client, nil)
}
