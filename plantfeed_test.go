package plantfeed_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantfeed/plantfeed"
	"github.com/plantfeed/plantfeed/application/service"
)

func newClient(t *testing.T, opts ...plantfeed.Option) *plantfeed.Client {
	t.Helper()
	dir := t.TempDir()
	opts = append([]plantfeed.Option{
		plantfeed.WithDataDir(dir),
		plantfeed.WithSQLite(filepath.Join(dir, "test.db")),
	}, opts...)
	client, err := plantfeed.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)

	csvData := []byte("Equipment Name,Type,Flow Rate,Status\n" +
		"Feed Pump,Pump,120.5,Active\n" +
		"Condenser A,condenser,80,Maintenance\n")

	outcome, err := client.Ingest.Ingest(ctx, csvData, "alice", "plant.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Created)

	batches, err := client.Batches.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.True(t, batches[0].Processed())

	summary, err := client.Batches.Summary(ctx, outcome.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalCount())
	assert.Equal(t, int64(1), summary.ActiveCount())

	hx, err := client.Equipment.Find(ctx, "alice", service.EquipmentFilter{Type: "Heat Exchanger"})
	require.NoError(t, err)
	require.Len(t, hx, 1)
	assert.Equal(t, "Condenser A", hx[0].Name())
}

func TestClientResetDisabledByDefault(t *testing.T) {
	client := newClient(t)

	_, err := client.Admin.Reset(context.Background())
	assert.ErrorIs(t, err, service.ErrResetDisabled)
}

func TestClientResetEnabled(t *testing.T) {
	ctx := context.Background()
	client := newClient(t, plantfeed.WithEnableReset())

	_, err := client.Ingest.Ingest(ctx, []byte("id,type\nE-1,Pump\n"), "alice", "a.csv")
	require.NoError(t, err)

	counts, err := client.Admin.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Batches)
	assert.Equal(t, int64(1), counts.Equipment)
}
