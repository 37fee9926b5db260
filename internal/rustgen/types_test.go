package rustgen

import (
	"testing"

	"github.com/refyne/openapi2rust/internal/spec"
)

func TestMapType_Primitives(t *testing.T) {
	t.Parallel()
	enums := NewEnumTable()

	cases := []struct {
		schema   *spec.Schema
		required bool
		want     string
	}{
		{&spec.Schema{Type: "string"}, true, "String"},
		{&spec.Schema{Type: "string"}, false, "Option<String>"},
		{&spec.Schema{Type: "integer"}, true, "i64"},
		{&spec.Schema{Type: "integer", Format: "int32"}, true, "i32"},
		{&spec.Schema{Type: "integer", Format: "int64"}, true, "i64"},
		{&spec.Schema{Type: "number"}, true, "f64"},
		{&spec.Schema{Type: "number", Format: "float"}, true, "f32"},
		{&spec.Schema{Type: "number", Format: "double"}, true, "f64"},
		{&spec.Schema{Type: "boolean"}, true, "bool"},
		{&spec.Schema{}, true, "serde_json::Value"},
		{nil, false, "Option<serde_json::Value>"},
	}
	for _, tc := range cases {
		if got := MapType(tc.schema, tc.required, "Parent", "field", enums); got != tc.want {
			t.Errorf("MapType(%+v, required=%v) = %q, want %q", tc.schema, tc.required, got, tc.want)
		}
	}
}

func TestMapType_RefAndComposition(t *testing.T) {
	t.Parallel()
	enums := NewEnumTable()

	if got := MapType(&spec.Schema{Ref: "Job"}, true, "", "", enums); got != "Job" {
		t.Errorf("ref: got %q", got)
	}
	if got := MapType(&spec.Schema{Ref: "Job"}, false, "", "", enums); got != "Option<Job>" {
		t.Errorf("optional ref: got %q", got)
	}

	allOf := &spec.Schema{AllOf: []*spec.Schema{{Ref: "Base"}, {Type: "object"}}}
	if got := MapType(allOf, true, "", "", enums); got != "Base" {
		t.Errorf("allOf first branch: got %q", got)
	}

	oneOf := &spec.Schema{OneOf: []*spec.Schema{{Type: "string"}, {Type: "integer"}}}
	if got := MapType(oneOf, true, "", "", enums); got != "serde_json::Value" {
		t.Errorf("oneOf: got %q", got)
	}
}

func TestMapType_InlineEnum(t *testing.T) {
	t.Parallel()
	enums := NewEnumTable()

	s := &spec.Schema{Type: "string", Enum: []any{"active", "paused"}}
	if got := MapType(s, true, "Job", "status", enums); got != "JobStatus" {
		t.Errorf("inline enum: got %q", got)
	}
	if vals := enums.Values("JobStatus"); len(vals) != 2 {
		t.Fatalf("enum not recorded: %v", vals)
	}

	// Without a naming context the enum degrades to a plain string.
	if got := MapType(s, true, "", "", enums); got != "String" {
		t.Errorf("context-free enum: got %q", got)
	}
}

func TestMapType_ArrayPropagatesEnumContext(t *testing.T) {
	t.Parallel()
	enums := NewEnumTable()

	arr := &spec.Schema{
		Type:  "array",
		Items: &spec.Schema{Type: "string", Enum: []any{"a", "b"}},
	}
	if got := MapType(arr, true, "Job", "tags", enums); got != "Vec<JobTags>" {
		t.Errorf("array of enums: got %q", got)
	}
	if enums.Len() != 1 {
		t.Fatalf("expected item enum to be recorded")
	}

	nested := &spec.Schema{Type: "array", Items: arr}
	if got := MapType(nested, false, "", "", enums); got != "Option<Vec<Vec<String>>>" {
		t.Errorf("nested array without context: got %q", got)
	}
}

func TestMapType_Objects(t *testing.T) {
	t.Parallel()
	enums := NewEnumTable()

	typed := &spec.Schema{
		Type:             "object",
		AdditionalMode:   spec.AdditionalTyped,
		AdditionalSchema: &spec.Schema{Type: "integer"},
	}
	if got := MapType(typed, true, "", "", enums); got != "std::collections::HashMap<String, i64>" {
		t.Errorf("typed map: got %q", got)
	}

	anyMap := &spec.Schema{Type: "object", AdditionalMode: spec.AdditionalAny}
	if got := MapType(anyMap, true, "", "", enums); got != "serde_json::Value" {
		t.Errorf("open map: got %q", got)
	}

	inline := &spec.Schema{Type: "object", Properties: []spec.Property{{Name: "x", Schema: &spec.Schema{Type: "string"}}}}
	if got := MapType(inline, false, "", "", enums); got != "Option<serde_json::Value>" {
		t.Errorf("inline object: got %q", got)
	}
}

func TestHasRequiredEnumFields(t *testing.T) {
	t.Parallel()

	s := &spec.Schema{
		Type:     "object",
		Required: []string{"mode"},
		Properties: []spec.Property{
			{Name: "mode", Schema: &spec.Schema{Type: "string", Enum: []any{"fast", "slow"}}},
			{Name: "note", Schema: &spec.Schema{Type: "string"}},
		},
	}
	if !HasRequiredEnumFields(s) {
		t.Errorf("expected required enum field to be detected")
	}

	optional := &spec.Schema{
		Type: "object",
		Properties: []spec.Property{
			{Name: "mode", Schema: &spec.Schema{Type: "string", Enum: []any{"fast"}}},
		},
	}
	if HasRequiredEnumFields(optional) {
		t.Errorf("optional enum field must not suppress Default")
	}
}
