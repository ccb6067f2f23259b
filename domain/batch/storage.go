package batch

import (
	"context"

	"github.com/plantfeed/plantfeed/domain/store"
)

// Store persists batch aggregates.
type Store interface {
	// Save inserts or updates the batch and returns the persisted copy.
	Save(ctx context.Context, b Batch) (Batch, error)
	// Find returns batches matching the given options.
	Find(ctx context.Context, opts ...store.Option) ([]Batch, error)
	// FindOne returns a single match or database.ErrNotFound.
	FindOne(ctx context.Context, opts ...store.Option) (Batch, error)
	// Count returns the number of matching rows.
	Count(ctx context.Context, opts ...store.Option) (int64, error)
	// DeleteBy removes matching rows.
	DeleteBy(ctx context.Context, opts ...store.Option) error
}

// SummaryStore persists per-batch summaries. A batch has at most one summary;
// Save replaces any existing summary for the same batch.
type SummaryStore interface {
	Save(ctx context.Context, s Summary) (Summary, error)
	FindOne(ctx context.Context, opts ...store.Option) (Summary, error)
	Count(ctx context.Context, opts ...store.Option) (int64, error)
	DeleteBy(ctx context.Context, opts ...store.Option) error
}
