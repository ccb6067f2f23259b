// Package tabular turns loosely structured CSV files into normalized
// equipment records: header resolution against an alias table, per-field type
// coercion, and row normalization.
package tabular

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical field names.
const (
	FieldEquipmentID      = "equipment_id"
	FieldEquipmentName    = "equipment_name"
	FieldEquipmentType    = "equipment_type"
	FieldManufacturer     = "manufacturer"
	FieldModelNumber      = "model_number"
	FieldSerialNumber     = "serial_number"
	FieldCapacity         = "capacity"
	FieldFlowrate         = "flowrate"
	FieldPressure         = "pressure"
	FieldTemperature      = "temperature"
	FieldLocation         = "location"
	FieldStatus           = "status"
	FieldInstallationDate = "installation_date"
	FieldLastMaintenance  = "last_maintenance"
	FieldNotes            = "notes"
)

// fieldOrder fixes the resolution priority between fields. A header claimed by
// a later field overrides an earlier claim on the same header, which is what
// lets a bare "equipment_name" column serve as the identifier only when no
// dedicated name column exists.
var fieldOrder = []string{
	FieldEquipmentID,
	FieldEquipmentName,
	FieldEquipmentType,
	FieldManufacturer,
	FieldModelNumber,
	FieldSerialNumber,
	FieldCapacity,
	FieldFlowrate,
	FieldPressure,
	FieldTemperature,
	FieldLocation,
	FieldStatus,
	FieldInstallationDate,
	FieldLastMaintenance,
	FieldNotes,
}

func defaultAliases() map[string][]string {
	return map[string][]string{
		FieldEquipmentID:      {"equipment_id", "id", "equip_id", "equipment_no", "equipment_name"},
		FieldEquipmentName:    {"equipment_name", "name", "equip_name"},
		FieldEquipmentType:    {"equipment_type", "type", "equip_type"},
		FieldManufacturer:     {"manufacturer", "make", "vendor"},
		FieldModelNumber:      {"model_number", "model", "model_no"},
		FieldSerialNumber:     {"serial_number", "serial", "serial_no"},
		FieldCapacity:         {"capacity", "cap"},
		FieldFlowrate:         {"flowrate", "flow_rate", "flow"},
		FieldPressure:         {"pressure", "press"},
		FieldTemperature:      {"temperature", "temp"},
		FieldLocation:         {"location", "loc", "site"},
		FieldStatus:           {"status", "state"},
		FieldInstallationDate: {"installation_date", "install_date", "commissioned_date"},
		FieldLastMaintenance:  {"last_maintenance", "last_maint", "maintenance_date"},
		FieldNotes:            {"notes", "remarks", "comments"},
	}
}

// Schema is the canonical field set with its header alias table. Aliases per
// field are ordered by priority.
type Schema struct {
	aliases map[string][]string
}

// DefaultSchema returns the compiled-in schema.
func DefaultSchema() *Schema {
	return &Schema{aliases: defaultAliases()}
}

// LoadSchema returns the default schema extended with aliases from a YAML
// file. The file maps canonical field names to lists of extra header aliases;
// unknown field names are rejected. An empty path returns the default schema.
func LoadSchema(path string) (*Schema, error) {
	schema := DefaultSchema()
	if path == "" {
		return schema, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column aliases file: %w", err)
	}

	var extra map[string][]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse column aliases file %s: %w", path, err)
	}

	for field, names := range extra {
		if _, ok := schema.aliases[field]; !ok {
			return nil, fmt.Errorf("column aliases file %s: unknown field %q", path, field)
		}
		for _, name := range names {
			schema.aliases[field] = append(schema.aliases[field], normalizeHeader(name))
		}
	}
	return schema, nil
}

// IsCanonical reports whether name is a canonical field name.
func (s *Schema) IsCanonical(name string) bool {
	_, ok := s.aliases[name]
	return ok
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeHeader lowercases a raw header and collapses whitespace runs into
// underscores.
func normalizeHeader(raw string) string {
	h := strings.ToLower(strings.TrimSpace(raw))
	return whitespaceRun.ReplaceAllString(h, "_")
}
