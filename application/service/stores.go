// Package service contains the application services orchestrating ingestion,
// aggregation, retention and queries over the domain stores.
package service

import (
	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/internal/database"
)

// Stores bundles the domain stores the services work against.
type Stores struct {
	Batches   batch.Store
	Summaries batch.SummaryStore
	Equipment equipment.Store
}

// StoreProvider builds a Stores bundle over a database handle. Ingestion uses
// it to rebind the stores onto a transaction.
type StoreProvider func(database.Database) Stores
