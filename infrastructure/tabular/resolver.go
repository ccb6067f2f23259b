package tabular

// DynamicColumn is a header that resolved to no canonical field. Its values
// land in the record's attribute bag under the normalized name.
type DynamicColumn struct {
	Name  string
	Index int
}

// Resolution maps a file's headers onto the schema: canonical field → column
// index, plus the leftover dynamic columns in header order.
type Resolution struct {
	canonical map[string]int
	dynamic   []DynamicColumn
}

// Column returns the column index for a canonical field, with ok=false when
// the file has no column for it.
func (r *Resolution) Column(field string) (int, bool) {
	idx, ok := r.canonical[field]
	return idx, ok
}

// Dynamic returns the unmapped columns in header order.
func (r *Resolution) Dynamic() []DynamicColumn { return r.dynamic }

// Resolve maps raw headers onto the schema. Each canonical field claims the
// first header matching one of its aliases; when two fields claim the same
// header, the later field in priority order wins and the earlier one is left
// unresolved. After mapping, a missing identifier mirrors the name column and
// vice versa. Files without an identifier-or-name column, or without a type
// column, fail with a *SchemaError; nothing is ingested from them.
func (s *Schema) Resolve(rawHeaders []string) (*Resolution, error) {
	normalized := make([]string, len(rawHeaders))
	position := make(map[string]int, len(rawHeaders))
	for i, raw := range rawHeaders {
		normalized[i] = normalizeHeader(raw)
		if _, seen := position[normalized[i]]; !seen {
			position[normalized[i]] = i
		}
	}

	// header index -> claiming field; later fields override earlier ones.
	claimed := make(map[int]string)
	for _, field := range fieldOrder {
		for _, alias := range s.aliases[field] {
			if idx, ok := position[alias]; ok {
				claimed[idx] = field
				break
			}
		}
	}

	res := &Resolution{canonical: make(map[string]int, len(claimed))}
	for idx, field := range claimed {
		if _, taken := res.canonical[field]; !taken {
			res.canonical[field] = idx
		}
	}
	for i, name := range normalized {
		if _, ok := claimed[i]; !ok {
			res.dynamic = append(res.dynamic, DynamicColumn{Name: name, Index: i})
		}
	}

	// A file may carry a single column serving as both identifier and name.
	if _, ok := res.canonical[FieldEquipmentID]; !ok {
		if idx, ok := res.canonical[FieldEquipmentName]; ok {
			res.canonical[FieldEquipmentID] = idx
		}
	} else if _, ok := res.canonical[FieldEquipmentName]; !ok {
		res.canonical[FieldEquipmentName] = res.canonical[FieldEquipmentID]
	}

	if _, ok := res.canonical[FieldEquipmentID]; !ok {
		return nil, &SchemaError{Missing: "Equipment Name or Equipment ID", Headers: rawHeaders}
	}
	if _, ok := res.canonical[FieldEquipmentType]; !ok {
		return nil, &SchemaError{Missing: "Equipment Type", Headers: rawHeaders}
	}
	return res, nil
}
