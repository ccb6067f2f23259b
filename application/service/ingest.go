package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/domain/store"
	"github.com/plantfeed/plantfeed/infrastructure/artifact"
	"github.com/plantfeed/plantfeed/infrastructure/tabular"
	"github.com/plantfeed/plantfeed/internal/database"
	"github.com/plantfeed/plantfeed/internal/log"
)

// Outcome reports the result of one ingestion.
type Outcome struct {
	BatchID      int64
	Filename     string
	Created      int
	Updated      int
	TotalRecords int
	Summary      batch.Summary
}

// Ingest runs the ingestion pipeline: parse, normalize, upsert, summarize,
// then sweep the owner's old batches. Ingestions for the same owner are
// serialized; different owners proceed independently.
type Ingest struct {
	db         database.Database
	stores     StoreProvider
	normalizer *tabular.Normalizer
	artifacts  *artifact.Store
	retention  *Retention
	logger     *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIngest creates the ingestion service.
func NewIngest(
	db database.Database,
	stores StoreProvider,
	normalizer *tabular.Normalizer,
	artifacts *artifact.Store,
	retention *Retention,
	logger *log.Logger,
) *Ingest {
	return &Ingest{
		db:         db,
		stores:     stores,
		normalizer: normalizer,
		artifacts:  artifacts,
		retention:  retention,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Ingest processes one uploaded file for an owner. On a schema error the
// batch and its artifact are rolled back and nothing is persisted; cell-level
// problems degrade to absent values instead of failing. After a successful
// ingestion the owner's batches beyond the retention limit are evicted.
func (s *Ingest) Ingest(ctx context.Context, data []byte, owner, filename string) (Outcome, error) {
	lock := s.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	ctx = log.WithOwner(ctx, owner)

	table, err := tabular.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return Outcome{}, fmt.Errorf("ingest %s: %w", filename, err)
	}

	key, err := s.artifacts.Save(filename, data)
	if err != nil {
		return Outcome{}, fmt.Errorf("ingest %s: %w", filename, err)
	}

	rootStores := s.stores(s.db)
	b, err := rootStores.Batches.Save(ctx, batch.New(owner, filename, key))
	if err != nil {
		if cleanupErr := s.artifacts.Delete(key); cleanupErr != nil {
			s.logger.WarnContext(ctx, "artifact cleanup failed", "key", key, "error", cleanupErr)
		}
		return Outcome{}, fmt.Errorf("ingest %s: %w", filename, err)
	}
	ctx = log.WithBatchID(ctx, b.ID())

	records, err := s.normalizer.Normalize(ctx, table)
	if err != nil {
		s.rollback(ctx, rootStores, b)
		return Outcome{}, fmt.Errorf("ingest %s: %w", filename, err)
	}

	outcome, err := s.persist(ctx, b, records)
	if err != nil {
		s.rollback(ctx, rootStores, b)
		return Outcome{}, fmt.Errorf("ingest %s: %w", filename, err)
	}

	s.logger.InfoContext(ctx, "batch ingested",
		"filename", filename,
		"created", outcome.Created,
		"updated", outcome.Updated,
		"total", outcome.TotalRecords,
	)

	if evicted, err := s.retention.Sweep(ctx, owner); err != nil {
		s.logger.WarnContext(ctx, "retention sweep failed", "error", err)
	} else if evicted > 0 {
		s.logger.InfoContext(ctx, "old batches evicted", "count", evicted)
	}

	return outcome, nil
}

// persist upserts the records, completes the batch and stores its summary,
// all in one transaction.
func (s *Ingest) persist(ctx context.Context, b batch.Batch, records []equipment.Record) (Outcome, error) {
	return database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (Outcome, error) {
		stores := s.stores(database.FromGorm(tx))

		var created, updated int
		for _, rec := range records {
			existing, err := stores.Equipment.FindOne(ctx, equipment.WithEquipmentID(rec.EquipmentID))
			switch {
			case err == nil:
				if _, err := stores.Equipment.Save(ctx, existing.Apply(b.ID(), rec)); err != nil {
					return Outcome{}, err
				}
				updated++
			case errors.Is(err, database.ErrNotFound):
				if _, err := stores.Equipment.Save(ctx, equipment.New(b.ID(), rec)); err != nil {
					return Outcome{}, err
				}
				created++
			default:
				return Outcome{}, err
			}
		}

		total := created + updated
		completed, err := stores.Batches.Save(ctx, b.Complete(total))
		if err != nil {
			return Outcome{}, err
		}

		rows, err := stores.Equipment.Find(ctx, equipment.WithBatchID(b.ID()))
		if err != nil {
			return Outcome{}, err
		}
		summary, err := stores.Summaries.Save(ctx, Aggregate(b.ID(), rows))
		if err != nil {
			return Outcome{}, err
		}

		return Outcome{
			BatchID:      completed.ID(),
			Filename:     completed.Filename(),
			Created:      created,
			Updated:      updated,
			TotalRecords: total,
			Summary:      summary,
		}, nil
	})
}

// rollback removes the batch shell and its artifact after a failed ingestion.
func (s *Ingest) rollback(ctx context.Context, stores Stores, b batch.Batch) {
	if err := stores.Batches.DeleteBy(ctx, store.WithID(b.ID())); err != nil {
		s.logger.WarnContext(ctx, "batch rollback failed", "error", err)
	}
	if err := s.artifacts.Delete(b.ArtifactKey()); err != nil {
		s.logger.WarnContext(ctx, "artifact rollback failed", "key", b.ArtifactKey(), "error", err)
	}
}

func (s *Ingest) ownerLock(owner string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[owner]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[owner] = lock
	}
	return lock
}
