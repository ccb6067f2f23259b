package equipment

import (
	"strings"

	"github.com/plantfeed/plantfeed/domain/store"
)

// WithEquipmentID filters by the natural key.
func WithEquipmentID(id string) store.Option {
	return store.WithCondition("equipment_id", id)
}

// WithBatchID filters by the owning batch.
func WithBatchID(batchID int64) store.Option {
	return store.WithCondition("batch_id", batchID)
}

// WithBatchIDIn filters by a set of owning batches.
func WithBatchIDIn(batchIDs []int64) store.Option {
	return store.WithConditionIn("batch_id", batchIDs)
}

// WithType filters by the normalized equipment type.
func WithType(equipmentType string) store.Option {
	return store.WithCondition("equipment_type", equipmentType)
}

// WithStatus filters by operational status.
func WithStatus(status Status) store.Option {
	return store.WithCondition("status", string(status))
}

// WithSearch matches the term case-insensitively against the equipment ID,
// name, manufacturer and location.
func WithSearch(term string) store.Option {
	pattern := "%" + strings.ToLower(term) + "%"
	return store.WithWhere(
		"LOWER(equipment_id) LIKE ? OR LOWER(equipment_name) LIKE ? OR LOWER(manufacturer) LIKE ? OR LOWER(location) LIKE ?",
		pattern, pattern, pattern, pattern,
	)
}

// WithFlowrate keeps rows that carry a flowrate reading.
func WithFlowrate() store.Option {
	return store.WithWhere("flowrate IS NOT NULL")
}

// OrderByEquipmentID sorts ascending by natural key.
func OrderByEquipmentID() store.Option {
	return store.WithOrderAsc("equipment_id")
}
