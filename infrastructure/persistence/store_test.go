package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/infrastructure/persistence"
	"github.com/plantfeed/plantfeed/internal/database"
	"github.com/plantfeed/plantfeed/internal/testdb"
)

func TestBatchStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewBatchStore(db)

	saved, err := store.Save(ctx, batch.New("alice", "plant.csv", "a1b2"))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())
	assert.False(t, saved.UploadedAt().IsZero())

	_, err = store.Save(ctx, batch.New("bob", "other.csv", "c3d4"))
	require.NoError(t, err)

	mine, err := store.Find(ctx, batch.WithOwner("alice"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "plant.csv", mine[0].Filename())
	assert.False(t, mine[0].Processed())
}

func TestBatchStoreComplete(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewBatchStore(db)

	saved, err := store.Save(ctx, batch.New("alice", "plant.csv", "a1b2"))
	require.NoError(t, err)

	completed, err := store.Save(ctx, saved.Complete(42))
	require.NoError(t, err)
	assert.True(t, completed.Processed())
	assert.Equal(t, 42, completed.TotalRecords())

	found, err := store.FindOne(ctx, batch.WithOwner("alice"))
	require.NoError(t, err)
	assert.True(t, found.Processed())
	assert.Equal(t, 42, found.TotalRecords())
}

func TestBatchStoreOrderByNewest(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewBatchStore(db)

	base := time.Now().UTC().Truncate(time.Second)
	for i, name := range []string{"first.csv", "second.csv", "third.csv"} {
		b := batch.Reconstruct(0, "alice", name, "", base.Add(time.Duration(i)*time.Minute), false, 0)
		_, err := store.Save(ctx, b)
		require.NoError(t, err)
	}

	batches, err := store.Find(ctx, batch.WithOwner("alice"), batch.OrderByNewest())
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, "third.csv", batches[0].Filename())
	assert.Equal(t, "first.csv", batches[2].Filename())
}

func TestEquipmentStoreSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	batches := persistence.NewBatchStore(db)
	store := persistence.NewEquipmentStore(db)

	b, err := batches.Save(ctx, batch.New("alice", "plant.csv", ""))
	require.NoError(t, err)

	flow := 120.5
	installed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rec := equipment.Record{
		EquipmentID:      "P-100",
		Name:             "Feed Pump",
		Type:             "Pump",
		Manufacturer:     "Acme",
		Status:           equipment.StatusActive,
		Flowrate:         &flow,
		InstallationDate: &installed,
		Attributes: equipment.Attributes{
			"efficiency": equipment.NumberValue(0.91),
			"inspector":  equipment.TextValue("A. Smith"),
		},
	}

	saved, err := store.Save(ctx, equipment.New(b.ID(), rec))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	found, err := store.FindOne(ctx, equipment.WithEquipmentID("P-100"))
	require.NoError(t, err)
	assert.Equal(t, b.ID(), found.BatchID())
	got := found.Record()
	assert.Equal(t, "Feed Pump", got.Name)
	require.NotNil(t, got.Flowrate)
	assert.Equal(t, 120.5, *got.Flowrate)
	require.NotNil(t, got.InstallationDate)
	assert.Equal(t, installed, got.InstallationDate.UTC())
	require.Len(t, got.Attributes, 2)
	assert.Equal(t, 0.91, got.Attributes["efficiency"].Number())
	assert.Equal(t, "A. Smith", got.Attributes["inspector"].Text())
}

func TestEquipmentStoreOverwriteKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewEquipmentStore(db)

	cap1 := 100.0
	first, err := store.Save(ctx, equipment.New(1, equipment.Record{
		EquipmentID: "P-1", Name: "Pump", Type: "Pump",
		Status: equipment.StatusActive, Capacity: &cap1,
	}))
	require.NoError(t, err)

	// Re-ingest with capacity absent: the field must null out, not linger.
	updated, err := store.Save(ctx, first.Apply(2, equipment.Record{
		EquipmentID: "P-1", Name: "Pump Mk2", Type: "Pump",
		Status: equipment.StatusMaintenance,
	}))
	require.NoError(t, err)
	assert.Equal(t, first.ID(), updated.ID())

	found, err := store.FindOne(ctx, equipment.WithEquipmentID("P-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.BatchID())
	assert.Equal(t, "Pump Mk2", found.Name())
	assert.Equal(t, equipment.StatusMaintenance, found.Status())
	assert.Nil(t, found.Record().Capacity)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEquipmentStoreFilters(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewEquipmentStore(db)

	seed := []equipment.Record{
		{EquipmentID: "P-1", Name: "Feed Pump", Type: "Pump", Status: equipment.StatusActive, Location: "Unit 1"},
		{EquipmentID: "P-2", Name: "Dosing Pump", Type: "Pump", Status: equipment.StatusMaintenance},
		{EquipmentID: "HX-1", Name: "Condenser", Type: "Heat Exchanger", Status: equipment.StatusActive},
	}
	for _, rec := range seed {
		_, err := store.Save(ctx, equipment.New(1, rec))
		require.NoError(t, err)
	}

	pumps, err := store.Find(ctx, equipment.WithType("Pump"), equipment.OrderByEquipmentID())
	require.NoError(t, err)
	require.Len(t, pumps, 2)

	hx, err := store.FindOne(ctx, equipment.WithType("Heat Exchanger"))
	require.NoError(t, err)
	assert.Equal(t, "HX-1", hx.EquipmentID())

	active, err := store.Count(ctx, equipment.WithStatus(equipment.StatusActive))
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	found, err := store.Find(ctx, equipment.WithSearch("dosing"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "P-2", found[0].EquipmentID())

	types, err := store.DistinctTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat Exchanger", "Pump"}, types)
}

func TestEquipmentStoreNotFound(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewEquipmentStore(db)

	_, err := store.FindOne(ctx, equipment.WithEquipmentID("missing"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSummaryStoreUpsertOnBatch(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewSummaryStore(db)

	avg := 15.0
	first, err := store.Save(ctx, batch.NewSummary(7).
		WithCounts(3, 2, 1, 0).
		WithTypeDistribution([]batch.TypeCount{{Type: "Pump", Count: 2}, {Type: "Valve", Count: 1}}).
		WithFlowrateStats(&avg, &avg, &avg))
	require.NoError(t, err)
	assert.NotZero(t, first.ID())

	second, err := store.Save(ctx, batch.NewSummary(7).WithCounts(5, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, first.ID(), second.ID(), "one summary per batch")

	found, err := store.FindOne(ctx, batch.WithBatchID(7))
	require.NoError(t, err)
	assert.Equal(t, int64(5), found.TotalCount())
	assert.Nil(t, found.AvgFlowrate(), "recomputed summary replaces old aggregates")
	assert.Empty(t, found.TypeDistribution())
}

func TestSummaryStoreDistributionOrderSurvives(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	store := persistence.NewSummaryStore(db)

	dist := []batch.TypeCount{
		{Type: "Pump", Count: 4},
		{Type: "Heat Exchanger", Count: 2},
		{Type: "Valve", Count: 2},
	}
	_, err := store.Save(ctx, batch.NewSummary(1).WithCounts(8, 8, 0, 0).WithTypeDistribution(dist))
	require.NoError(t, err)

	found, err := store.FindOne(ctx, batch.WithBatchID(1))
	require.NoError(t, err)
	assert.Equal(t, dist, found.TypeDistribution())
}
