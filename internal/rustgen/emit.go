package rustgen

import (
	"fmt"
	"strings"

	"github.com/refyne/openapi2rust/internal/spec"
)

// Result holds the rendered source text and counters for the run summary.
type Result struct {
	Content         string
	SchemaCount     int
	InlineEnumCount int
}

// Generate renders the complete Rust type declarations for one document.
// Output is deterministic: the same document always renders byte-identical
// text. The enum accumulator lives for exactly one call.
func Generate(doc *spec.Document) Result {
	enums := NewEnumTable()
	lines := renderHeader(doc.APIVersion)

	if len(doc.Schemas) == 0 {
		lines = append(lines, "// No schemas found in OpenAPI specification")
		lines = append(lines, "")
		lines = append(lines, renderSupplemental(map[string]struct{}{}, true)...)
		return Result{Content: strings.Join(lines, "\n")}
	}

	groups := Classify(doc.Schemas)

	// First pass over direct string-enum properties. The mapper records the
	// rest (array items, nested nodes) while the struct sections render.
	for _, ns := range doc.Schemas {
		s := ns.Schema
		if s.Type != "object" && !s.HasProperties() {
			continue
		}
		for _, p := range s.Properties {
			if p.Schema != nil && len(p.Schema.Enum) > 0 && p.Schema.Type == "string" {
				enums.Add(InlineEnumName(ns.Name, p.Name), p.Schema.Enum)
			}
		}
	}

	// Struct and alias sections render before the enum section is emitted
	// so every inline enum the mapper discovers gets a declaration.
	requests := renderGroup(groups.Requests, enums, false)
	responses := renderGroup(groups.Responses, enums, false)
	others := renderGroup(groups.Others, enums, true)

	if len(groups.Enums) > 0 || enums.Len() > 0 {
		lines = append(lines, banner("Enums")...)
		lines = append(lines, "")
		topLevel := make(map[string]struct{}, len(groups.Enums))
		for _, ns := range groups.Enums {
			topLevel[ns.Name] = struct{}{}
			lines = append(lines, renderEnum(ns.Name, ns.Schema.Enum, ns.Schema.Description)...)
			lines = append(lines, "")
		}
		for _, name := range enums.Names() {
			if _, dup := topLevel[name]; dup {
				continue
			}
			lines = append(lines, renderEnum(name, enums.Values(name), "")...)
			lines = append(lines, "")
		}
	}

	if len(groups.Requests) > 0 {
		lines = append(lines, banner("Request Types")...)
		lines = append(lines, "")
		lines = append(lines, requests...)
	}
	if len(groups.Responses) > 0 {
		lines = append(lines, banner("Response Types")...)
		lines = append(lines, "")
		lines = append(lines, responses...)
	}
	if len(groups.Others) > 0 {
		lines = append(lines, banner("Other Types")...)
		lines = append(lines, "")
		lines = append(lines, others...)
	}

	includeModel := true
	for _, ns := range groups.Others {
		if ns.Name == "Model" {
			includeModel = false
			break
		}
	}
	lines = append(lines, renderSupplemental(doc.SchemaNames(), includeModel)...)

	return Result{
		Content:         strings.Join(lines, "\n"),
		SchemaCount:     len(doc.Schemas),
		InlineEnumCount: enums.Len(),
	}
}

// renderGroup renders one classification bucket. Object-shaped schemas
// become structs, everything else a type alias; in the other-types bucket an
// allOf composition also renders as a struct.
func renderGroup(group []spec.NamedSchema, enums *EnumTable, allOfAsStruct bool) []string {
	var lines []string
	for _, ns := range group {
		s := ns.Schema
		switch {
		case s.Type == "object" || s.HasProperties():
			lines = append(lines, renderStruct(ns.Name, s, enums)...)
		case allOfAsStruct && len(s.AllOf) > 0:
			lines = append(lines, renderStruct(ns.Name, s, enums)...)
		default:
			lines = append(lines, renderAlias(ns.Name, s, enums)...)
		}
		lines = append(lines, "")
	}
	return lines
}

func renderEnum(name string, values []any, description string) []string {
	var lines []string
	if description != "" {
		lines = append(lines, docComment("", description)...)
	}
	lines = append(lines, "#[derive(Debug, Clone, Copy, Serialize, Deserialize, PartialEq, Eq)]")

	lits := make([]string, len(values))
	allLower := true
	for i, v := range values {
		lits[i] = enumLiteral(v)
		if lits[i] != strings.ToLower(lits[i]) {
			allLower = false
		}
	}
	// Uniform lowercase literals fold into one directive; otherwise each
	// variant pins its exact wire value.
	if allLower {
		lines = append(lines, `#[serde(rename_all = "lowercase")]`)
	}
	lines = append(lines, "pub enum "+name+" {")
	for _, lit := range lits {
		if !allLower {
			lines = append(lines, fmt.Sprintf("    #[serde(rename = %q)]", lit))
		}
		lines = append(lines, "    /// "+lit)
		lines = append(lines, "    "+ToPascalCase(lit)+",")
	}
	lines = append(lines, "}")
	return lines
}

func renderStruct(name string, s *spec.Schema, enums *EnumTable) []string {
	var lines []string
	if s.Description != "" {
		lines = append(lines, docComment("", s.Description)...)
	}
	if s.Deprecated {
		lines = append(lines, deprecatedAttr("", s.DeprecationMsg, "This type is deprecated."))
	}
	lines = append(lines, "#[derive("+strings.Join(deriveSet(name, s), ", ")+")]")

	hasSnake := false
	for _, p := range s.Properties {
		if strings.Contains(p.Name, "_") {
			hasSnake = true
			break
		}
	}
	if !hasSnake && len(s.Properties) > 0 {
		lines = append(lines, `#[serde(rename_all = "camelCase")]`)
	}
	lines = append(lines, "pub struct "+name+" {")

	for _, p := range s.Properties {
		// JSON Schema metadata members like $schema are not data fields.
		if strings.HasPrefix(p.Name, "$") {
			continue
		}
		required := s.IsRequired(p.Name)
		field := ToSnakeCase(p.Name)
		escaped := EscapeKeyword(field)
		typ := MapType(p.Schema, required, name, p.Name, enums)

		if p.Schema != nil && p.Schema.Description != "" {
			lines = append(lines, docComment("    ", p.Schema.Description)...)
		}
		if p.Schema != nil && p.Schema.Deprecated {
			lines = append(lines, deprecatedAttr("    ", p.Schema.DeprecationMsg, "This field is deprecated."))
		}
		// The wire name survives either through the struct-level camelCase
		// directive or through a per-field rename.
		if escaped != field || (hasSnake && !strings.Contains(p.Name, "_")) {
			lines = append(lines, fmt.Sprintf("    #[serde(rename = %q)]", p.Name))
		}
		if !required && IsRequestName(name) {
			lines = append(lines, `    #[serde(skip_serializing_if = "Option::is_none")]`)
		}
		lines = append(lines, "    pub "+escaped+": "+typ+",")
	}
	lines = append(lines, "}")
	return lines
}

func renderAlias(name string, s *spec.Schema, enums *EnumTable) []string {
	var lines []string
	if s.Description != "" {
		lines = append(lines, docComment("", s.Description)...)
	}
	lines = append(lines, "pub type "+name+" = "+MapType(s, true, "", "", enums)+";")
	return lines
}

// deriveSet selects serde capabilities by classification: request types
// serialize out (with Default unless a required field is an inline enum,
// which has no default value), response types deserialize in, everything
// else gets both.
func deriveSet(name string, s *spec.Schema) []string {
	attrs := []string{"Debug", "Clone"}
	switch {
	case IsRequestName(name):
		attrs = append(attrs, "Serialize")
		if !HasRequiredEnumFields(s) {
			attrs = append(attrs, "Default")
		}
	case IsResponseName(name):
		attrs = append(attrs, "Deserialize")
	default:
		attrs = append(attrs, "Serialize", "Deserialize")
	}
	return attrs
}

func banner(title string) []string {
	bar := "// " + strings.Repeat("=", 76)
	return []string{bar, "// " + title, bar}
}

func docComment(indent, text string) []string {
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, indent+"/// "+part)
	}
	return lines
}

func deprecatedAttr(indent, msg, fallback string) string {
	if msg == "" {
		msg = fallback
	}
	return fmt.Sprintf("%s#[deprecated(note = %q)]", indent, msg)
}

func enumLiteral(v any) string { return fmt.Sprint(v) }
