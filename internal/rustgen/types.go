package rustgen

import (
	"sort"

	"github.com/refyne/openapi2rust/internal/spec"
)

// dynamicValue is the opaque catch-all type used whenever no concrete Rust
// type can be determined.
const dynamicValue = "serde_json::Value"

// EnumTable accumulates inline enums discovered while mapping property
// schemas. It is owned by one generation run and passed explicitly; there is
// no cross-run state.
type EnumTable struct {
	values map[string][]any
}

// NewEnumTable returns an empty accumulator.
func NewEnumTable() *EnumTable {
	return &EnumTable{values: make(map[string][]any)}
}

// Add records the literal values for a synthesized enum name. Later
// discoveries of the same name win, matching a plain map assignment.
func (t *EnumTable) Add(name string, values []any) {
	t.values[name] = values
}

// Names returns the recorded enum names in sorted order.
func (t *EnumTable) Names() []string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the literal values recorded for name.
func (t *EnumTable) Values(name string) []any { return t.values[name] }

// Len returns the number of recorded inline enums.
func (t *EnumTable) Len() int { return len(t.values) }

// InlineEnumName synthesizes the declaration name for an enum discovered
// inside a property: parent type name plus the PascalCase field name.
func InlineEnumName(parentType, fieldName string) string {
	return parentType + ToPascalCase(fieldName)
}

// MapType converts one schema node to a Rust type expression. required
// controls Option wrapping; parentType and fieldName give inline enums their
// synthesized name and must be propagated through array items, or enums
// inside arrays silently degrade to String.
func MapType(s *spec.Schema, required bool, parentType, fieldName string, enums *EnumTable) string {
	if s == nil {
		return wrapOptional(dynamicValue, required)
	}

	if s.Ref != "" {
		// Name substitution only; the referenced schema is not inlined.
		return wrapOptional(s.Ref, required)
	}

	if len(s.AllOf) > 0 {
		// allOf collapses to the first branch; genuine composition is
		// not modeled.
		return wrapOptional(MapType(s.AllOf[0], true, "", "", enums), required)
	}

	if len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return wrapOptional(dynamicValue, required)
	}

	if len(s.Enum) > 0 {
		if parentType != "" && fieldName != "" {
			name := InlineEnumName(parentType, fieldName)
			enums.Add(name, s.Enum)
			return wrapOptional(name, required)
		}
		// No naming context, fall back to a plain string.
		return wrapOptional("String", required)
	}

	typ := s.Type
	if typ == "" {
		typ = "object"
	}

	var rust string
	switch typ {
	case "string":
		rust = "String"
	case "integer":
		switch s.Format {
		case "int32":
			rust = "i32"
		case "int64":
			rust = "i64"
		default:
			rust = "i64"
		}
	case "number":
		if s.Format == "float" {
			rust = "f32"
		} else {
			rust = "f64"
		}
	case "boolean":
		rust = "bool"
	case "array":
		// Element optionality is not modeled; items are always required.
		rust = "Vec<" + MapType(s.Items, true, parentType, fieldName, enums) + ">"
	case "object":
		if s.AdditionalMode == spec.AdditionalTyped && s.AdditionalSchema != nil {
			rust = "std::collections::HashMap<String, " + MapType(s.AdditionalSchema, true, parentType, fieldName, enums) + ">"
		} else {
			// additionalProperties: true, inline property objects, and bare
			// objects all map to the dynamic value; inline objects are not
			// expanded into named types.
			rust = dynamicValue
		}
	default:
		rust = dynamicValue
	}
	return wrapOptional(rust, required)
}

func wrapOptional(rust string, required bool) string {
	if required {
		return rust
	}
	return "Option<" + rust + ">"
}

// HasRequiredEnumFields reports whether any required property declares an
// inline enum. Referenced types are not inspected; most refs point at
// structs, not enums.
func HasRequiredEnumFields(s *spec.Schema) bool {
	for _, p := range s.Properties {
		if !s.IsRequired(p.Name) {
			continue
		}
		if p.Schema != nil && len(p.Schema.Enum) > 0 {
			return true
		}
	}
	return false
}
