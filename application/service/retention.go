package service

import (
	"context"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/domain/store"
	"github.com/plantfeed/plantfeed/infrastructure/artifact"
	"github.com/plantfeed/plantfeed/internal/log"
)

// Retention evicts an owner's batches beyond the retention limit, newest
// first. Eviction is best-effort: a batch that fails to evict is logged and
// skipped, the sweep moves on.
type Retention struct {
	stores    Stores
	artifacts *artifact.Store
	limit     int
	logger    *log.Logger
}

// NewRetention creates the retention service keeping the given number of
// batches per owner.
func NewRetention(stores Stores, artifacts *artifact.Store, limit int, logger *log.Logger) *Retention {
	return &Retention{stores: stores, artifacts: artifacts, limit: limit, logger: logger}
}

// Limit returns the number of batches kept per owner.
func (r *Retention) Limit() int { return r.limit }

// Sweep evicts the owner's batches beyond the limit and returns how many were
// removed.
func (r *Retention) Sweep(ctx context.Context, owner string) (int, error) {
	batches, err := r.stores.Batches.Find(ctx, batch.WithOwner(owner), batch.OrderByNewest())
	if err != nil {
		return 0, err
	}
	if len(batches) <= r.limit {
		return 0, nil
	}

	evicted := 0
	for _, b := range batches[r.limit:] {
		if err := r.evict(ctx, b); err != nil {
			r.logger.WarnContext(ctx, "batch eviction failed",
				"evicted_batch", b.ID(), "filename", b.Filename(), "error", err)
			continue
		}
		evicted++
	}
	return evicted, nil
}

// evict removes one batch with its equipment rows, summary and artifact.
// Equipment re-parented onto a newer batch is no longer attributed here and
// survives.
func (r *Retention) evict(ctx context.Context, b batch.Batch) error {
	if err := r.stores.Equipment.DeleteBy(ctx, equipment.WithBatchID(b.ID())); err != nil {
		return err
	}
	if err := r.stores.Summaries.DeleteBy(ctx, batch.WithBatchID(b.ID())); err != nil {
		return err
	}
	if err := r.artifacts.Delete(b.ArtifactKey()); err != nil {
		r.logger.WarnContext(ctx, "artifact delete failed",
			"evicted_batch", b.ID(), "key", b.ArtifactKey(), "error", err)
	}
	return r.stores.Batches.DeleteBy(ctx, store.WithID(b.ID()))
}
