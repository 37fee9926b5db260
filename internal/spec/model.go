package spec

// Internal document model consumed by the Rust generator. Unlike the
// kin-openapi tree it keeps schemas and properties in the order they appear
// in the source document.

// Document is the materialized view of one OpenAPI document.
type Document struct {
    Title          string
    APIVersion     string
    OpenAPIVersion string
    Description    string
    Schemas        []NamedSchema
}

// NamedSchema is one entry of components.schemas.
type NamedSchema struct {
    Name   string
    Schema *Schema
}

// SchemaNames returns the set of top-level schema names.
func (d *Document) SchemaNames() map[string]struct{} {
    set := make(map[string]struct{}, len(d.Schemas))
    for _, ns := range d.Schemas {
        set[ns.Name] = struct{}{}
    }
    return set
}

// AdditionalMode describes how a schema constrains additional properties.
type AdditionalMode int

const (
    AdditionalNone AdditionalMode = iota
    // AdditionalAny corresponds to additionalProperties: true.
    AdditionalAny
    // AdditionalTyped corresponds to an additionalProperties schema.
    AdditionalTyped
)

// Schema is a read-only view of one schema node.
type Schema struct {
    // Ref holds the tail name of a $ref (e.g. "Job" for
    // "#/components/schemas/Job"). When set the other fields are unused.
    Ref string

    Type        string
    Format      string
    Description string

    Properties []Property
    Required   []string
    Items      *Schema

    AdditionalMode   AdditionalMode
    AdditionalSchema *Schema

    Enum []any

    AllOf []*Schema
    OneOf []*Schema
    AnyOf []*Schema

    Deprecated     bool
    DeprecationMsg string
}

// Property is one member of an object schema, in document order.
type Property struct {
    Name   string
    Schema *Schema
}

// HasProperties reports whether the node declares any properties.
func (s *Schema) HasProperties() bool { return s != nil && len(s.Properties) > 0 }

// IsEnum reports whether the node is a pure enumeration: enum values and
// no properties.
func (s *Schema) IsEnum() bool {
    return s != nil && len(s.Enum) > 0 && len(s.Properties) == 0
}

// IsRequired reports whether the named property is in the required set.
func (s *Schema) IsRequired(name string) bool {
    if s == nil {
        return false
    }
    for _, r := range s.Required {
        if r == name {
            return true
        }
    }
    return false
}
