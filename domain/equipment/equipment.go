// Package equipment holds the equipment aggregate: a piece of plant equipment
// identified by its natural equipment ID, with a fixed canonical schema plus a
// dynamic attribute bag for columns outside it.
package equipment

import (
	"time"
)

// Status is the operational status of a piece of equipment.
type Status string

// Known statuses. Unrecognized inputs are stored verbatim.
const (
	StatusActive         Status = "Active"
	StatusInactive       Status = "Inactive"
	StatusMaintenance    Status = "Maintenance"
	StatusDecommissioned Status = "Decommissioned"
)

// KnownStatuses returns the recognized status values in display order.
func KnownStatuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusMaintenance, StatusDecommissioned}
}

// maintenanceOverdue is the age beyond which a maintenance record is
// considered stale.
const maintenanceOverdue = 180 * 24 * time.Hour

// Equipment is a persisted equipment row. The natural key is the equipment ID;
// re-ingesting a record with the same ID updates the existing row in place and
// re-parents it onto the new batch.
type Equipment struct {
	id        int64
	batchID   int64
	record    Record
	createdAt time.Time
	updatedAt time.Time
}

// New creates an equipment aggregate from a normalized record, parented on the
// given batch.
func New(batchID int64, record Record) Equipment {
	return Equipment{batchID: batchID, record: record}
}

// Reconstruct rebuilds an equipment aggregate from persisted state.
func Reconstruct(id, batchID int64, record Record, createdAt, updatedAt time.Time) Equipment {
	return Equipment{
		id:        id,
		batchID:   batchID,
		record:    record,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the surrogate database ID (zero until persisted).
func (e Equipment) ID() int64 { return e.id }

// BatchID returns the owning batch ID.
func (e Equipment) BatchID() int64 { return e.batchID }

// Record returns the normalized record payload.
func (e Equipment) Record() Record { return e.record }

// EquipmentID returns the natural key.
func (e Equipment) EquipmentID() string { return e.record.EquipmentID }

// Name returns the display name.
func (e Equipment) Name() string { return e.record.Name }

// Type returns the normalized equipment category.
func (e Equipment) Type() string { return e.record.Type }

// Status returns the operational status.
func (e Equipment) Status() Status { return e.record.Status }

// CreatedAt returns the persistence creation time.
func (e Equipment) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns the last persistence update time.
func (e Equipment) UpdatedAt() time.Time { return e.updatedAt }

// Apply overwrites the record payload and re-parents the equipment onto the
// given batch, preserving identity and creation time.
func (e Equipment) Apply(batchID int64, record Record) Equipment {
	e.batchID = batchID
	e.record = record
	return e
}

// IsOperational reports whether the equipment is in active service.
func (e Equipment) IsOperational() bool {
	return e.record.Status == StatusActive
}

// NeedsMaintenance reports whether the last maintenance is missing or older
// than six months.
func (e Equipment) NeedsMaintenance(now time.Time) bool {
	if e.record.LastMaintenance == nil {
		return true
	}
	return now.Sub(*e.record.LastMaintenance) > maintenanceOverdue
}

// Flatten merges the canonical fields and the dynamic attributes into a single
// map for presentation. Canonical fields win on key collision.
func (e Equipment) Flatten() map[string]any {
	out := make(map[string]any, len(e.record.Attributes)+16)
	for k, v := range e.record.Attributes {
		out[k] = v.Any()
	}
	out["equipment_id"] = e.record.EquipmentID
	out["equipment_name"] = e.record.Name
	out["equipment_type"] = e.record.Type
	out["status"] = string(e.record.Status)
	putString(out, "manufacturer", e.record.Manufacturer)
	putString(out, "model_number", e.record.ModelNumber)
	putString(out, "serial_number", e.record.SerialNumber)
	putString(out, "location", e.record.Location)
	putString(out, "notes", e.record.Notes)
	putFloat(out, "capacity", e.record.Capacity)
	putFloat(out, "flowrate", e.record.Flowrate)
	putFloat(out, "pressure", e.record.Pressure)
	putFloat(out, "temperature", e.record.Temperature)
	putDate(out, "installation_date", e.record.InstallationDate)
	putDate(out, "last_maintenance", e.record.LastMaintenance)
	return out
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putDate(m map[string]any, key string, v *time.Time) {
	if v != nil {
		m[key] = v.Format("2006-01-02")
	}
}
