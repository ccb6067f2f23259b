package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plantfeed/plantfeed/application/service"
	"github.com/plantfeed/plantfeed/domain/equipment"
)

func equipmentCmd() *cobra.Command {
	var (
		envFile string
		owner   string
		filter  struct {
			batchID    int64
			equipType  string
			status     string
			search     string
			limit      int
			offset     int
			showDetail bool
		}
	)

	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "List the owner's equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := service.EquipmentFilter{
				Type:   filter.equipType,
				Status: equipment.Status(filter.status),
				Search: filter.search,
				Limit:  filter.limit,
				Offset: filter.offset,
			}
			if filter.batchID != 0 {
				f.BatchID = &filter.batchID
			}
			return runEquipment(cmd, envFile, owner, f, filter.showDetail)
		},
	}

	addEnvFileFlag(cmd, &envFile)
	addOwnerFlag(cmd, &owner)
	cmd.Flags().Int64Var(&filter.batchID, "batch", 0, "Restrict to one batch")
	cmd.Flags().StringVar(&filter.equipType, "type", "", "Filter by equipment type")
	cmd.Flags().StringVar(&filter.status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&filter.search, "search", "", "Substring search over ID, name, manufacturer and location")
	cmd.Flags().IntVar(&filter.limit, "limit", 0, "Maximum rows to show")
	cmd.Flags().IntVar(&filter.offset, "offset", 0, "Rows to skip")
	cmd.Flags().BoolVar(&filter.showDetail, "detail", false, "Show all fields including dynamic attributes")
	return cmd
}

func runEquipment(cmd *cobra.Command, envFile, owner string, filter service.EquipmentFilter, detail bool) error {
	client, err := newClient(envFile)
	if err != nil {
		return err
	}

	items, err := client.Equipment.Find(cmdContext(), owner, filter)
	if err != nil {
		return closeClient(client, err)
	}

	if detail {
		for _, eq := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", eq.EquipmentID())
			flat := eq.Flatten()
			for _, key := range sortedKeys(flat) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", key, flat[key])
			}
		}
		return closeClient(client, nil)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tFLOWRATE\tLOCATION")
	for _, eq := range items {
		rec := eq.Record()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.EquipmentID, rec.Name, rec.Type, rec.Status,
			fmtStat(rec.Flowrate), rec.Location)
	}
	if err := w.Flush(); err != nil {
		return closeClient(client, err)
	}
	return closeClient(client, nil)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
