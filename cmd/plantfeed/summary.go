package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plantfeed/plantfeed/domain/batch"
)

func summaryCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "summary <batch-id>",
		Short: "Show the summary statistics of a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batchID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid batch id %q", args[0])
			}
			return runSummary(envFile, batchID)
		},
	}

	addEnvFileFlag(cmd, &envFile)
	return cmd
}

func runSummary(envFile string, batchID int64) error {
	client, err := newClient(envFile)
	if err != nil {
		return err
	}

	summary, err := client.Batches.Summary(cmdContext(), batchID)
	if err != nil {
		return closeClient(client, err)
	}

	fmt.Printf("Batch %d\n", summary.BatchID())
	printSummary(summary)
	return closeClient(client, nil)
}

func printSummary(s batch.Summary) {
	fmt.Printf("  equipment: %d total, %d active, %d inactive, %d maintenance\n",
		s.TotalCount(), s.ActiveCount(), s.InactiveCount(), s.MaintenanceCount())
	if dist := s.TypeDistribution(); len(dist) > 0 {
		fmt.Println("  types:")
		for _, tc := range dist {
			fmt.Printf("    %-20s %d\n", tc.Type, tc.Count)
		}
	}
	fmt.Printf("  flowrate:    avg %s  max %s  min %s\n",
		fmtStat(s.AvgFlowrate()), fmtStat(s.MaxFlowrate()), fmtStat(s.MinFlowrate()))
	fmt.Printf("  pressure:    avg %s\n", fmtStat(s.AvgPressure()))
	fmt.Printf("  temperature: avg %s\n", fmtStat(s.AvgTemperature()))
}

func fmtStat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func cmdContext() context.Context {
	return context.Background()
}
