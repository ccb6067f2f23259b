// Package plantfeed ingests loosely structured equipment CSV files into a
// normalized store and keeps per-batch summary statistics.
//
// Files with arbitrarily named columns are resolved against a canonical
// schema, coerced field by field, and upserted on the natural equipment ID.
// Each owner keeps only their most recent batches; older ones are evicted
// together with their rows, summary and stored artifact.
//
// Basic usage:
//
//	client, err := plantfeed.New(
//	    plantfeed.WithSQLite(".plantfeed/data.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	outcome, err := client.Ingest.Ingest(ctx, csvBytes, "alice", "plant.csv")
//
//	summary, err := client.Batches.Summary(ctx, outcome.BatchID)
//
//	pumps, err := client.Equipment.Find(ctx, "alice", service.EquipmentFilter{Type: "Pump"})
package plantfeed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plantfeed/plantfeed/application/service"
	"github.com/plantfeed/plantfeed/infrastructure/artifact"
	"github.com/plantfeed/plantfeed/infrastructure/persistence"
	"github.com/plantfeed/plantfeed/infrastructure/tabular"
	"github.com/plantfeed/plantfeed/internal/database"
	"github.com/plantfeed/plantfeed/internal/log"
)

// Client is the main entry point for the plantfeed library.
//
// Access operations via struct fields:
//
//	client.Ingest.Ingest(ctx, data, owner, filename)
//	client.Batches.List(ctx, owner)
//	client.Equipment.Dashboard(ctx, owner)
type Client struct {
	Ingest    *service.Ingest
	Batches   *service.BatchQuery
	Equipment *service.EquipmentQuery
	Admin     *service.Admin

	db      database.Database
	logger  *log.Logger
	dataDir string
}

// New creates a Client. Without options it stores everything under the
// default data directory in SQLite.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.Default()
	}

	if err := os.MkdirAll(cfg.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dbURL := cfg.dbURL
	if dbURL == "" {
		dbURL = "sqlite:///" + filepath.Join(cfg.dataDir, "plantfeed.db")
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	schema, err := tabular.LoadSchema(cfg.columnAliasesFile)
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(err, errClose)
	}

	artifacts, err := artifact.NewStore(filepath.Join(cfg.dataDir, "uploads"))
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(err, errClose)
	}

	provider := func(db database.Database) service.Stores {
		return service.Stores{
			Batches:   persistence.NewBatchStore(db),
			Summaries: persistence.NewSummaryStore(db),
			Equipment: persistence.NewEquipmentStore(db),
		}
	}
	stores := provider(db)

	normalizer := tabular.NewNormalizer(schema, logger)
	retention := service.NewRetention(stores, artifacts, cfg.retentionLimit, logger)

	return &Client{
		Ingest:    service.NewIngest(db, provider, normalizer, artifacts, retention, logger),
		Batches:   service.NewBatchQuery(stores, cfg.retentionLimit),
		Equipment: service.NewEquipmentQuery(stores),
		Admin:     service.NewAdmin(stores, artifacts, cfg.enableReset, logger),
		db:        db,
		logger:    logger,
		dataDir:   cfg.dataDir,
	}, nil
}

// DataDir returns the directory holding the database and artifacts.
func (c *Client) DataDir() string { return c.dataDir }

// Close releases the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}
