package service

import (
	"context"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/store"
)

// BatchQuery answers read queries over batches and their summaries.
type BatchQuery struct {
	stores Stores
	limit  int
}

// NewBatchQuery creates the batch query service. The limit mirrors the
// retention limit so listings never show more than an owner can retain.
func NewBatchQuery(stores Stores, limit int) *BatchQuery {
	return &BatchQuery{stores: stores, limit: limit}
}

// List returns the owner's retained batches, newest first.
func (s *BatchQuery) List(ctx context.Context, owner string) ([]batch.Batch, error) {
	return s.stores.Batches.Find(ctx,
		batch.WithOwner(owner),
		batch.OrderByNewest(),
		store.WithLimit(s.limit),
	)
}

// Get returns one of the owner's batches by ID; database.ErrNotFound when it
// does not exist or belongs to someone else.
func (s *BatchQuery) Get(ctx context.Context, owner string, batchID int64) (batch.Batch, error) {
	return s.stores.Batches.FindOne(ctx, batch.WithOwner(owner), store.WithID(batchID))
}

// Summary returns the summary of a batch; database.ErrNotFound when the batch
// was evicted or never summarized.
func (s *BatchQuery) Summary(ctx context.Context, batchID int64) (batch.Summary, error) {
	return s.stores.Summaries.FindOne(ctx, batch.WithBatchID(batchID))
}
