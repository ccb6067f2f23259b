package equipment

import (
	"context"

	"github.com/plantfeed/plantfeed/domain/store"
)

// Store persists equipment aggregates.
type Store interface {
	// Save inserts or updates the aggregate and returns the persisted copy.
	Save(ctx context.Context, eq Equipment) (Equipment, error)
	// Find returns equipment matching the given options.
	Find(ctx context.Context, opts ...store.Option) ([]Equipment, error)
	// FindOne returns a single match or database.ErrNotFound.
	FindOne(ctx context.Context, opts ...store.Option) (Equipment, error)
	// Count returns the number of matching rows.
	Count(ctx context.Context, opts ...store.Option) (int64, error)
	// DeleteBy removes matching rows.
	DeleteBy(ctx context.Context, opts ...store.Option) error
	// DistinctTypes returns the distinct equipment types in sorted order.
	DistinctTypes(ctx context.Context, opts ...store.Option) ([]string, error)
}
