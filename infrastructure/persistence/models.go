// Package persistence implements the GORM-backed stores for batches,
// equipment and summaries.
package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/plantfeed/plantfeed/domain/batch"
	"github.com/plantfeed/plantfeed/domain/equipment"
)

// BatchModel is the database model for an upload batch.
type BatchModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Owner        string    `gorm:"column:owner;index;not null"`
	Filename     string    `gorm:"column:filename;not null"`
	ArtifactKey  string    `gorm:"column:artifact_key"`
	UploadedAt   time.Time `gorm:"column:uploaded_at;autoCreateTime;index"`
	Processed    bool      `gorm:"column:processed;not null;default:false"`
	TotalRecords int       `gorm:"column:total_records;not null;default:0"`
}

// TableName returns the table name for batches.
func (BatchModel) TableName() string {
	return "batches"
}

// EquipmentModel is the database model for an equipment row. The natural key
// equipment_id is globally unique; re-ingesting it overwrites the row.
type EquipmentModel struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	BatchID *int64 `gorm:"column:batch_id;index"`

	EquipmentID   string `gorm:"column:equipment_id;uniqueIndex;not null"`
	EquipmentName string `gorm:"column:equipment_name;not null"`
	EquipmentType string `gorm:"column:equipment_type;index;not null"`
	Manufacturer  string `gorm:"column:manufacturer"`
	ModelNumber   string `gorm:"column:model_number"`
	SerialNumber  string `gorm:"column:serial_number"`
	Location      string `gorm:"column:location"`
	Status        string `gorm:"column:status;index;not null"`
	Notes         string `gorm:"column:notes"`

	Capacity    *float64 `gorm:"column:capacity"`
	Flowrate    *float64 `gorm:"column:flowrate"`
	Pressure    *float64 `gorm:"column:pressure"`
	Temperature *float64 `gorm:"column:temperature"`

	InstallationDate *time.Time `gorm:"column:installation_date"`
	LastMaintenance  *time.Time `gorm:"column:last_maintenance"`

	Attributes AttributesJSON `gorm:"column:attributes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for equipment.
func (EquipmentModel) TableName() string {
	return "equipment"
}

// SummaryModel is the database model for a per-batch summary.
type SummaryModel struct {
	ID      int64 `gorm:"column:id;primaryKey;autoIncrement"`
	BatchID int64 `gorm:"column:batch_id;uniqueIndex;not null"`

	TotalCount       int64 `gorm:"column:total_count;not null;default:0"`
	ActiveCount      int64 `gorm:"column:active_count;not null;default:0"`
	InactiveCount    int64 `gorm:"column:inactive_count;not null;default:0"`
	MaintenanceCount int64 `gorm:"column:maintenance_count;not null;default:0"`

	TypeDistribution TypeDistributionJSON `gorm:"column:type_distribution;type:text"`

	AvgFlowrate *float64 `gorm:"column:avg_flowrate"`
	MaxFlowrate *float64 `gorm:"column:max_flowrate"`
	MinFlowrate *float64 `gorm:"column:min_flowrate"`

	AvgPressure    *float64 `gorm:"column:avg_pressure"`
	AvgTemperature *float64 `gorm:"column:avg_temperature"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for summaries.
func (SummaryModel) TableName() string {
	return "summaries"
}

// AttributesJSON stores a dynamic attribute bag as a JSON text column.
type AttributesJSON equipment.Attributes

// Value serializes the attributes to JSON for storage.
func (a AttributesJSON) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(equipment.Attributes(a))
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the attributes from their stored JSON form.
func (a *AttributesJSON) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AttributesJSON", value)
	}

	var attrs equipment.Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return fmt.Errorf("unmarshal attributes: %w", err)
	}
	*a = AttributesJSON(attrs)
	return nil
}

// TypeDistributionJSON stores the ordered type distribution as a JSON text
// column. A JSON array keeps the count-descending order stable across
// round-trips.
type TypeDistributionJSON []batch.TypeCount

// Value serializes the distribution to JSON for storage.
func (d TypeDistributionJSON) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]batch.TypeCount(d))
	if err != nil {
		return nil, fmt.Errorf("marshal type distribution: %w", err)
	}
	return string(data), nil
}

// Scan deserializes the distribution from its stored JSON form.
func (d *TypeDistributionJSON) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TypeDistributionJSON", value)
	}

	var dist []batch.TypeCount
	if err := json.Unmarshal(data, &dist); err != nil {
		return fmt.Errorf("unmarshal type distribution: %w", err)
	}
	*d = dist
	return nil
}
