package equipment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// ValueKind identifies the type carried by a Value.
type ValueKind int

// ValueKind values.
const (
	KindNumber ValueKind = iota
	KindText
)

// Value is a dynamic attribute value: either a number or a string.
// Columns outside the canonical schema are coerced numeric-first so that
// numeric-looking dynamic columns participate in aggregation as numbers.
type Value struct {
	kind   ValueKind
	number float64
	text   string
}

// NumberValue creates a numeric Value.
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

// TextValue creates a string Value.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind returns the value kind.
func (v Value) Kind() ValueKind { return v.kind }

// IsNumber returns true for numeric values.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Number returns the numeric payload (zero for text values).
func (v Value) Number() float64 { return v.number }

// Text returns the string payload (empty for numeric values).
func (v Value) Text() string { return v.text }

// Any returns the payload as an untyped value for flattened records.
func (v Value) Any() any {
	if v.kind == KindNumber {
		return v.number
	}
	return v.text
}

// String returns a readable representation.
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	}
	return v.text
}

// MarshalJSON encodes the value as a bare JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON decodes a bare JSON number or string into a Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return fmt.Errorf("attribute number %q: %w", t.String(), err)
		}
		*v = NumberValue(n)
		return nil
	case string:
		*v = TextValue(t)
		return nil
	default:
		return fmt.Errorf("attribute value must be a number or a string, got %T", raw)
	}
}

// Attributes holds the dynamic attribute bag of an equipment record, keyed by
// the normalized column name.
type Attributes map[string]Value

// Keys returns the attribute keys in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of the attribute map.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	cp := make(Attributes, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}
