package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantfeed/plantfeed/application/service"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/internal/config"
	"github.com/plantfeed/plantfeed/internal/log"
)

const unitsCSV = "id,name,type,status,flowrate,pressure\n" +
	"P-1,Feed Pump,Pump,Active,120,4\n" +
	"P-2,Dosing Pump,Pump,Active,80,6\n" +
	"P-3,Backup Pump,Pump,Maintenance,200,\n" +
	"V-1,Relief Valve,Valve,Inactive,,\n" +
	"T-1,Buffer Tank,Tank,Active,,\n"

func TestEquipmentQueryFind(t *testing.T) {
	p := newPipeline(t, 5)
	ctx := context.Background()
	p.mustIngest(t, "alice", "units.csv", unitsCSV)

	pumps, err := p.equipment.Find(ctx, "alice", service.EquipmentFilter{Type: "Pump"})
	require.NoError(t, err)
	require.Len(t, pumps, 3)
	assert.Equal(t, "P-1", pumps[0].EquipmentID(), "results ordered by equipment ID")

	active, err := p.equipment.Find(ctx, "alice", service.EquipmentFilter{Status: equipment.StatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 3)

	found, err := p.equipment.Find(ctx, "alice", service.EquipmentFilter{Search: "valve"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "V-1", found[0].EquipmentID())

	paged, err := p.equipment.Find(ctx, "alice", service.EquipmentFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 2)
}

func TestEquipmentQueryScopedToOwner(t *testing.T) {
	p := newPipeline(t, 5)
	ctx := context.Background()
	p.mustIngest(t, "alice", "units.csv", unitsCSV)

	none, err := p.equipment.Find(ctx, "bob", service.EquipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, none, "owners only see their own equipment")

	types, err := p.equipment.Types(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestEquipmentQueryTypes(t *testing.T) {
	p := newPipeline(t, 5)
	p.mustIngest(t, "alice", "units.csv", unitsCSV)

	types, err := p.equipment.Types(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pump", "Tank", "Valve"}, types)
}

func TestEquipmentQueryDashboard(t *testing.T) {
	p := newPipeline(t, 5)
	p.mustIngest(t, "alice", "units.csv", unitsCSV)

	dash, err := p.equipment.Dashboard(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(5), dash.TotalEquipment)
	assert.Equal(t, int64(3), dash.ActiveEquipment)
	assert.Equal(t, int64(1), dash.InactiveEquipment)
	assert.Equal(t, int64(1), dash.MaintenanceEquipment)
	assert.Equal(t, 3, dash.TotalTypes)

	require.NotNil(t, dash.AvgFlowrate)
	assert.Equal(t, 133.33, *dash.AvgFlowrate, "averages are rounded to two decimals")
	require.NotNil(t, dash.AvgPressure)
	assert.Equal(t, 5.0, *dash.AvgPressure)
	assert.Nil(t, dash.AvgTemperature, "no temperature readings stays nil")
}

func TestEquipmentQueryDashboardEmptyOwner(t *testing.T) {
	p := newPipeline(t, 5)

	dash, err := p.equipment.Dashboard(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, dash.TotalEquipment)
	assert.Nil(t, dash.AvgFlowrate)
}

func TestEquipmentQueryFlowrateChart(t *testing.T) {
	p := newPipeline(t, 5)
	p.mustIngest(t, "alice", "units.csv", unitsCSV)

	chart, err := p.equipment.FlowrateChart(context.Background(), "alice", nil)
	require.NoError(t, err)

	// Only active equipment with a flowrate, largest first. P-3 is under
	// maintenance and must not chart.
	assert.Equal(t, []string{"P-1", "P-2"}, chart.EquipmentIDs)
	assert.Equal(t, []float64{120, 80}, chart.Flowrates)
}

func TestEquipmentQueryTypeDistribution(t *testing.T) {
	p := newPipeline(t, 5)
	p.mustIngest(t, "alice", "units.csv", unitsCSV)

	dist, err := p.equipment.TypeDistribution(context.Background(), "alice", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pump", "Tank", "Valve"}, dist.Types)
	assert.Equal(t, []int64{3, 1, 1}, dist.Counts)
	assert.Equal(t, []float64{60, 20, 20}, dist.Percentages)
}

func TestAdminResetGated(t *testing.T) {
	p := newPipeline(t, 5)
	logger := log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "DEBUG")

	disabled := service.NewAdmin(p.stores, p.artifacts, false, logger)
	_, err := disabled.Reset(context.Background())
	assert.ErrorIs(t, err, service.ErrResetDisabled)
}

func TestAdminReset(t *testing.T) {
	p := newPipeline(t, 5)
	ctx := context.Background()
	logger := log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "DEBUG")

	p.mustIngest(t, "alice", "units.csv", unitsCSV)
	p.mustIngest(t, "bob", "b.csv", "id,type\nB-1,Pump\n")

	admin := service.NewAdmin(p.stores, p.artifacts, true, logger)
	counts, err := admin.Reset(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts.Batches)
	assert.Equal(t, int64(6), counts.Equipment)
	assert.Equal(t, int64(2), counts.Summaries)

	remaining, err := p.stores.Batches.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, remaining)
	assert.Zero(t, artifactCount(t, p.artifacts))
}
