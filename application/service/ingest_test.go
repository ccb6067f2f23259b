package service_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantfeed/plantfeed/application/service"
	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/infrastructure/artifact"
	"github.com/plantfeed/plantfeed/infrastructure/persistence"
	"github.com/plantfeed/plantfeed/infrastructure/tabular"
	"github.com/plantfeed/plantfeed/internal/config"
	"github.com/plantfeed/plantfeed/internal/database"
	"github.com/plantfeed/plantfeed/internal/log"
	"github.com/plantfeed/plantfeed/internal/testdb"
)

type pipeline struct {
	db        database.Database
	stores    service.Stores
	artifacts *artifact.Store
	ingest    *service.Ingest
	batches   *service.BatchQuery
	equipment *service.EquipmentQuery
}

func newPipeline(t *testing.T, retentionLimit int) *pipeline {
	t.Helper()

	db := testdb.New(t)
	logger := log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "DEBUG")

	provider := func(db database.Database) service.Stores {
		return service.Stores{
			Batches:   persistence.NewBatchStore(db),
			Summaries: persistence.NewSummaryStore(db),
			Equipment: persistence.NewEquipmentStore(db),
		}
	}
	stores := provider(db)

	artifacts, err := artifact.NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	normalizer := tabular.NewNormalizer(tabular.DefaultSchema(), logger)
	retention := service.NewRetention(stores, artifacts, retentionLimit, logger)

	return &pipeline{
		db:        db,
		stores:    stores,
		artifacts: artifacts,
		ingest:    service.NewIngest(db, provider, normalizer, artifacts, retention, logger),
		batches:   service.NewBatchQuery(stores, retentionLimit),
		equipment: service.NewEquipmentQuery(stores),
	}
}

func (p *pipeline) mustIngest(t *testing.T, owner, filename, csvData string) service.Outcome {
	t.Helper()
	out, err := p.ingest.Ingest(context.Background(), []byte(csvData), owner, filename)
	require.NoError(t, err)
	return out
}

func artifactCount(t *testing.T, store *artifact.Store) int {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	return len(entries)
}

const plantCSV = "id,name,type,status,flowrate,pressure,temperature\n" +
	"P-1,Feed Pump,Pump,Active,10,2.5,80\n" +
	"P-2,Dosing Pump,Pump,Maintenance,20,,\n" +
	"HX-1,Condenser Unit,Condenser,Inactive,,3.5,-10\n"

func TestIngestOutcome(t *testing.T) {
	p := newPipeline(t, 5)

	out := p.mustIngest(t, "alice", "plant.csv", plantCSV)

	assert.NotZero(t, out.BatchID)
	assert.Equal(t, "plant.csv", out.Filename)
	assert.Equal(t, 3, out.Created)
	assert.Equal(t, 0, out.Updated)
	assert.Equal(t, 3, out.TotalRecords)

	b, err := p.batches.Get(context.Background(), "alice", out.BatchID)
	require.NoError(t, err)
	assert.True(t, b.Processed())
	assert.Equal(t, 3, b.TotalRecords())
	assert.Equal(t, 1, artifactCount(t, p.artifacts))

	// Condenser folds into Heat Exchanger.
	hx, err := p.stores.Equipment.FindOne(context.Background(), equipment.WithEquipmentID("HX-1"))
	require.NoError(t, err)
	assert.Equal(t, "Heat Exchanger", hx.Type())
}

func TestIngestIdempotent(t *testing.T) {
	p := newPipeline(t, 5)
	ctx := context.Background()

	first := p.mustIngest(t, "alice", "plant.csv", plantCSV)
	second := p.mustIngest(t, "alice", "plant.csv", plantCSV)

	assert.Equal(t, 3, first.Created)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 3, second.Updated)

	count, err := p.stores.Equipment.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "re-ingesting the same file must not duplicate rows")

	// All rows now belong to the second batch.
	reparented, err := p.stores.Equipment.Count(ctx, equipment.WithBatchID(second.BatchID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), reparented)
}

func TestIngestDuplicateWithinFile(t *testing.T) {
	p := newPipeline(t, 5)

	out := p.mustIngest(t, "alice", "dup.csv",
		"id,type,location\nP-1,Pump,Unit 1\nP-1,Pump,Unit 2\n")

	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Updated, "second occurrence of an identifier counts as an update")

	eq, err := p.stores.Equipment.FindOne(context.Background(), equipment.WithEquipmentID("P-1"))
	require.NoError(t, err)
	assert.Equal(t, "Unit 2", eq.Record().Location, "last write wins within a file")
}

func TestIngestSchemaErrorLeavesNothing(t *testing.T) {
	p := newPipeline(t, 5)
	ctx := context.Background()

	_, err := p.ingest.Ingest(ctx, []byte("manufacturer,location\nAcme,Unit 1\n"), "alice", "bad.csv")

	var schemaErr *tabular.SchemaError
	require.ErrorAs(t, err, &schemaErr)

	batches, err := p.batches.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, batches, "failed ingestion must not leave a batch behind")
	assert.Zero(t, artifactCount(t, p.artifacts), "failed ingestion must not leave an artifact behind")
}

func TestIngestSummaryAggregates(t *testing.T) {
	p := newPipeline(t, 5)

	out := p.mustIngest(t, "alice", "plant.csv", plantCSV)
	sum := out.Summary

	assert.Equal(t, int64(3), sum.TotalCount())
	assert.Equal(t, int64(1), sum.ActiveCount())
	assert.Equal(t, int64(1), sum.InactiveCount())
	assert.Equal(t, int64(1), sum.MaintenanceCount())

	// Flowrates 10 and 20; the third row has none.
	require.NotNil(t, sum.AvgFlowrate())
	assert.Equal(t, 15.0, *sum.AvgFlowrate())
	require.NotNil(t, sum.MaxFlowrate())
	assert.Equal(t, 20.0, *sum.MaxFlowrate())
	require.NotNil(t, sum.MinFlowrate())
	assert.Equal(t, 10.0, *sum.MinFlowrate())

	require.NotNil(t, sum.AvgPressure())
	assert.Equal(t, 3.0, *sum.AvgPressure())
	require.NotNil(t, sum.AvgTemperature())
	assert.Equal(t, 35.0, *sum.AvgTemperature())

	dist := sum.TypeDistribution()
	require.Len(t, dist, 2)
	assert.Equal(t, batch.TypeCount{Type: "Pump", Count: 2}, dist[0])
	assert.Equal(t, batch.TypeCount{Type: "Heat Exchanger", Count: 1}, dist[1])

	stored, err := p.batches.Summary(context.Background(), out.BatchID)
	require.NoError(t, err)
	assert.Equal(t, sum.TotalCount(), stored.TotalCount())
}

func TestIngestSummaryEmptyAggregates(t *testing.T) {
	p := newPipeline(t, 5)

	out := p.mustIngest(t, "alice", "dry.csv", "id,type\nE-1,Pump\n")

	assert.Nil(t, out.Summary.AvgFlowrate(), "no readings must stay nil, not zero")
	assert.Nil(t, out.Summary.MaxFlowrate())
	assert.Nil(t, out.Summary.AvgPressure())
	assert.Nil(t, out.Summary.AvgTemperature())
}

func TestRetentionKeepsMostRecent(t *testing.T) {
	p := newPipeline(t, 5)
	ctx := context.Background()

	var outcomes []service.Outcome
	for i := 1; i <= 7; i++ {
		csvData := fmt.Sprintf("id,type\nE-%d,Pump\n", i)
		outcomes = append(outcomes, p.mustIngest(t, "alice", fmt.Sprintf("upload-%d.csv", i), csvData))
	}

	batches, err := p.batches.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, batches, 5)
	assert.Equal(t, "upload-7.csv", batches[0].Filename())
	assert.Equal(t, "upload-3.csv", batches[4].Filename())

	// Evicted batches lose their summaries along with themselves.
	_, err = p.batches.Summary(ctx, outcomes[0].BatchID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = p.batches.Get(ctx, "alice", outcomes[1].BatchID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	// Artifacts of evicted batches are gone too.
	assert.Equal(t, 5, artifactCount(t, p.artifacts))

	// Surviving batches keep their summaries.
	sum, err := p.batches.Summary(ctx, outcomes[6].BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.TotalCount())
}

func TestRetentionSparesReparentedEquipment(t *testing.T) {
	p := newPipeline(t, 2)
	ctx := context.Background()

	p.mustIngest(t, "alice", "a.csv", "id,type\nSHARED-1,Pump\n")
	p.mustIngest(t, "alice", "b.csv", "id,type\nSHARED-1,Pump\nB-1,Valve\n")
	p.mustIngest(t, "alice", "c.csv", "id,type\nC-1,Tank\n")

	// The first batch is evicted, but SHARED-1 moved to the second batch and
	// must survive.
	_, err := p.stores.Equipment.FindOne(ctx, equipment.WithEquipmentID("SHARED-1"))
	assert.NoError(t, err)

	batches, err := p.batches.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, batches, 2)
}

func TestRetentionIsPerOwner(t *testing.T) {
	p := newPipeline(t, 2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		p.mustIngest(t, "alice", fmt.Sprintf("a-%d.csv", i), fmt.Sprintf("id,type\nA-%d,Pump\n", i))
	}
	p.mustIngest(t, "bob", "b-1.csv", "id,type\nB-1,Pump\n")

	aliceBatches, err := p.batches.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceBatches, 2)

	bobBatches, err := p.batches.List(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobBatches, 1, "one owner's sweep must not touch another's batches")
}
