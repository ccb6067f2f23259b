// Package testdb provides in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plantfeed/plantfeed/infrastructure/persistence"
	"github.com/plantfeed/plantfeed/internal/database"
)

// New creates a migrated in-memory SQLite database. The connection is closed
// when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()

	db := NewPlain(t)
	require.NoError(t, persistence.AutoMigrate(db))
	return db
}

// NewPlain creates an in-memory SQLite database without running migrations.
func NewPlain(t *testing.T) database.Database {
	t.Helper()

	// A named shared-cache database keeps all connections of one test on the
	// same in-memory instance while isolating parallel tests.
	url := fmt.Sprintf("sqlite:///file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.NewDatabase(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
