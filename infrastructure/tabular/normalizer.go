package tabular

import (
	"context"
	"strings"
	"time"

	"github.com/plantfeed/plantfeed/domain/equipment"
	"github.com/plantfeed/plantfeed/internal/log"
)

// fallbackType is assigned when the type cell is blank.
const fallbackType = "Other"

// typeSynonyms maps spelling variants onto a standard category. Keys are
// lowercased with whitespace removed. A condenser is a kind of heat exchanger.
var typeSynonyms = map[string]string{
	"heatexchanger":  "Heat Exchanger",
	"heat_exchanger": "Heat Exchanger",
	"condenser":      "Heat Exchanger",
}

// Normalizer turns raw tables into normalized equipment records.
type Normalizer struct {
	schema *Schema
	logger *log.Logger
}

// NewNormalizer creates a normalizer over the given schema.
func NewNormalizer(schema *Schema, logger *log.Logger) *Normalizer {
	return &Normalizer{schema: schema, logger: logger}
}

// Normalize resolves the table's headers and coerces every row into a record.
// Rows whose identifier is blank after coercion are dropped. Header problems
// surface as *SchemaError; cell-level problems never fail the table, they
// degrade to absent values.
func (n *Normalizer) Normalize(ctx context.Context, table Table) ([]equipment.Record, error) {
	res, err := n.schema.Resolve(table.Headers)
	if err != nil {
		return nil, err
	}

	records := make([]equipment.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec, ok := n.normalizeRow(ctx, res, table, row)
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (n *Normalizer) normalizeRow(ctx context.Context, res *Resolution, table Table, row []string) (equipment.Record, bool) {
	text := func(field string) string {
		idx, ok := res.Column(field)
		if !ok {
			return ""
		}
		return coerceText(table.Cell(row, idx))
	}
	number := func(field string, nonNegative bool) *float64 {
		idx, ok := res.Column(field)
		if !ok {
			return nil
		}
		return coerceNumber(table.Cell(row, idx), nonNegative)
	}
	date := func(field string) *time.Time {
		idx, ok := res.Column(field)
		if !ok {
			return nil
		}
		return coerceDate(table.Cell(row, idx))
	}

	id := text(FieldEquipmentID)
	if id == "" {
		return equipment.Record{}, false
	}

	name := text(FieldEquipmentName)
	if name == "" {
		name = id
	}

	status := equipment.StatusActive
	if s := text(FieldStatus); s != "" {
		status = equipment.Status(s)
	}

	rec := equipment.Record{
		EquipmentID:      id,
		Name:             name,
		Type:             normalizeCategory(text(FieldEquipmentType)),
		Manufacturer:     text(FieldManufacturer),
		ModelNumber:      text(FieldModelNumber),
		SerialNumber:     text(FieldSerialNumber),
		Location:         text(FieldLocation),
		Status:           status,
		Notes:            text(FieldNotes),
		Capacity:         number(FieldCapacity, true),
		Flowrate:         number(FieldFlowrate, true),
		Pressure:         number(FieldPressure, true),
		Temperature:      number(FieldTemperature, false),
		InstallationDate: date(FieldInstallationDate),
		LastMaintenance:  date(FieldLastMaintenance),
	}

	rec.Attributes = n.dynamicAttributes(ctx, res, table, row)
	return rec, true
}

// dynamicAttributes coerces the unmapped cells, numeric-first. A dynamic key
// that shadows a canonical field is dropped so the canonical value stays
// authoritative.
func (n *Normalizer) dynamicAttributes(ctx context.Context, res *Resolution, table Table, row []string) equipment.Attributes {
	dyn := res.Dynamic()
	if len(dyn) == 0 {
		return nil
	}

	attrs := make(equipment.Attributes, len(dyn))
	for _, col := range dyn {
		raw := table.Cell(row, col.Index)
		if isMissing(raw) {
			continue
		}
		if n.schema.IsCanonical(col.Name) {
			n.logger.WarnContext(ctx, "dropping dynamic column shadowing a canonical field",
				"column", col.Name)
			continue
		}
		if v := coerceNumber(raw, false); v != nil {
			attrs[col.Name] = equipment.NumberValue(*v)
		} else {
			attrs[col.Name] = equipment.TextValue(strings.TrimSpace(raw))
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// normalizeCategory trims the raw type and folds known spelling variants onto
// their standard name. Unknown categories pass through unchanged.
func normalizeCategory(raw string) string {
	if raw == "" {
		return fallbackType
	}
	key := strings.ReplaceAll(strings.ToLower(raw), " ", "")
	if std, ok := typeSynonyms[key]; ok {
		return std
	}
	return raw
}
