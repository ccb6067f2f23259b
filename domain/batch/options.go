package batch

import "github.com/plantfeed/plantfeed/domain/store"

// WithOwner filters by owning principal.
func WithOwner(owner string) store.Option {
	return store.WithCondition("owner", owner)
}

// WithBatchID filters summaries by their batch.
func WithBatchID(batchID int64) store.Option {
	return store.WithCondition("batch_id", batchID)
}

// WithBatchIDIn filters summaries by a set of batches.
func WithBatchIDIn(batchIDs []int64) store.Option {
	return store.WithConditionIn("batch_id", batchIDs)
}

// WithProcessed filters by processing state.
func WithProcessed(processed bool) store.Option {
	return store.WithCondition("processed", processed)
}

// OrderByNewest sorts by upload time, most recent first.
func OrderByNewest() store.Option {
	return store.WithOrderDesc("uploaded_at")
}
