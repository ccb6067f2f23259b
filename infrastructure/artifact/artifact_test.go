package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantfeed/plantfeed/infrastructure/artifact"
)

func TestStoreSaveOpenDelete(t *testing.T) {
	store, err := artifact.NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	key, err := store.Save("plant.csv", []byte("id,type\nP-1,Pump\n"))
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(key))

	data, err := store.Open(key)
	require.NoError(t, err)
	assert.Equal(t, "id,type\nP-1,Pump\n", string(data))

	require.NoError(t, store.Delete(key))
	_, err = store.Open(key)
	assert.Error(t, err)
}

func TestStoreDeleteTolerant(t *testing.T) {
	store, err := artifact.NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never-existed.csv"))
	assert.NoError(t, store.Delete(""))
}

func TestStoreKeysUnique(t *testing.T) {
	store, err := artifact.NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("same.csv", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save("same.csv", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
