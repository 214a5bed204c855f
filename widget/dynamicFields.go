package widget

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jfmanager/web/entity"
)

// FieldKind is the closed set of input kinds a category schema may
// declare.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldDate
	FieldBoolean
	FieldSelect
)

func (k FieldKind) String() string {
	switch k {
	case FieldNumber:
		return "number"
	case FieldDate:
		return "date"
	case FieldBoolean:
		return "boolean"
	case FieldSelect:
		return "select"
	}
	return "text"
}

// kindOf maps a schema type name to a kind. Unknown names render as text
// inputs, matching the form's fallback.
func kindOf(name string) FieldKind {
	switch strings.ToLower(name) {
	case "number":
		return FieldNumber
	case "date":
		return FieldDate
	case "boolean":
		return FieldBoolean
	case "select":
		return FieldSelect
	}
	return FieldText
}

// Field is one category-specific attribute input.
type Field struct {
	Name string
	Kind FieldKind
}

// Label turns snake_case attribute names into display labels.
func (f Field) Label() string {
	words := strings.Split(f.Name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseSchema builds the field list from a category's schema map, ordered
// by name so the form renders deterministically.
func ParseSchema(schema map[string]string) []Field {
	fields := make([]Field, 0, len(schema))
	for name, typeName := range schema {
		fields = append(fields, Field{Name: name, Kind: kindOf(typeName)})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}

// FieldValue is the tagged value of one dynamic field. Only the slot
// matching Kind is meaningful.
type FieldValue struct {
	Kind   FieldKind
	Text   string
	Number float64
	Date   entity.Date
	Bool   bool
}

// ParseValue converts a raw form input into the field's typed value.
// Empty inputs yield the kind's zero value.
func (f Field) ParseValue(raw string) (FieldValue, error) {
	v := FieldValue{Kind: f.Kind}
	if raw == "" {
		return v, nil
	}

	switch f.Kind {
	case FieldNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return v, fmt.Errorf("field %s: %w", f.Name, err)
		}
		v.Number = n

	case FieldDate:
		var d entity.Date
		if err := d.UnmarshalJSON([]byte(`"` + raw + `"`)); err != nil {
			return v, fmt.Errorf("field %s: %w", f.Name, err)
		}
		v.Date = d

	case FieldBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return v, fmt.Errorf("field %s: %w", f.Name, err)
		}
		v.Bool = b

	default:
		v.Text = raw
	}
	return v, nil
}

// attribute is the generic JSON form the backend stores.
func (v FieldValue) attribute() any {
	switch v.Kind {
	case FieldNumber:
		return v.Number
	case FieldDate:
		return v.Date.String()
	case FieldBoolean:
		return v.Bool
	}
	return v.Text
}

// EncodeAttributes serializes field values into the item's attribute map,
// the analog of the hidden JSON field the form keeps in sync.
func EncodeAttributes(values map[string]FieldValue) map[string]any {
	attributes := make(map[string]any, len(values))
	for name, v := range values {
		attributes[name] = v.attribute()
	}
	return attributes
}

// DecodeAttributes loads existing attribute values into typed field
// values for editing. Attributes not present in the schema are dropped;
// malformed values fall back to the field's zero value.
func DecodeAttributes(fields []Field, attributes map[string]any) map[string]FieldValue {
	values := make(map[string]FieldValue, len(fields))
	for _, f := range fields {
		raw, ok := attributes[f.Name]
		if !ok {
			continue
		}

		v := FieldValue{Kind: f.Kind}
		switch f.Kind {
		case FieldNumber:
			switch n := raw.(type) {
			case float64:
				v.Number = n
			case string:
				v.Number, _ = strconv.ParseFloat(n, 64)
			}

		case FieldDate:
			if s, ok := raw.(string); ok {
				_ = v.Date.UnmarshalJSON([]byte(`"` + s + `"`))
			}

		case FieldBoolean:
			switch b := raw.(type) {
			case bool:
				v.Bool = b
			case string:
				v.Bool = b == "true"
			}

		default:
			v.Text = fmt.Sprint(raw)
		}
		values[f.Name] = v
	}
	return values
}
