package spec

import (
    "encoding/json"
    "fmt"
    "sort"
    "strings"

    "github.com/getkin/kin-openapi/openapi3"
)

// Build converts a parsed OpenAPI v3 document into the internal Document.
// raw holds the bytes the document was parsed from; it is scanned to recover
// the member order of components.schemas and of each schema's properties.
// Documents without components.schemas build an empty schema list rather
// than failing.
func Build(doc *openapi3.T, raw []byte) (*Document, error) {
    if doc == nil {
        return nil, fmt.Errorf("nil document")
    }

    d := &Document{
        OpenAPIVersion: safeStr(doc.OpenAPI),
        APIVersion:     "unknown",
        Title:          "unknown",
    }
    if doc.Info != nil {
        if v := safeStr(doc.Info.Version); v != "" {
            d.APIVersion = v
        }
        if t := safeStr(doc.Info.Title); t != "" {
            d.Title = t
        }
        d.Description = safeStr(doc.Info.Description)
    }
    if d.OpenAPIVersion == "" {
        d.OpenAPIVersion = "unknown"
    }

    if doc.Components == nil || len(doc.Components.Schemas) == 0 {
        return d, nil
    }

    var idx *orderIndex
    if raw != nil {
        idx, _ = scanOrder(raw) // nil on non-JSON input; sorted fallback below
    }

    names := orderedNames(doc.Components.Schemas, idx)
    d.Schemas = make([]NamedSchema, 0, len(names))
    for _, name := range names {
        ref := doc.Components.Schemas[name]
        if ref == nil {
            continue
        }
        var propOrder []string
        if idx != nil {
            propOrder = idx.properties[name]
        }
        d.Schemas = append(d.Schemas, NamedSchema{Name: name, Schema: toSchema(ref, propOrder)})
    }
    return d, nil
}

// orderedNames returns schema names in document order, appending any names
// the scan missed (or, without an index, all names) in sorted order.
func orderedNames(schemas openapi3.Schemas, idx *orderIndex) []string {
    seen := make(map[string]struct{}, len(schemas))
    out := make([]string, 0, len(schemas))
    if idx != nil {
        for _, name := range idx.schemas {
            if _, ok := schemas[name]; !ok {
                continue
            }
            if _, dup := seen[name]; dup {
                continue
            }
            seen[name] = struct{}{}
            out = append(out, name)
        }
    }
    rest := make([]string, 0, len(schemas))
    for name := range schemas {
        if _, ok := seen[name]; !ok {
            rest = append(rest, name)
        }
    }
    sort.Strings(rest)
    return append(out, rest...)
}

// toSchema converts one kin-openapi schema node. propOrder, when non-nil,
// fixes the property order; remaining properties follow sorted.
func toSchema(ref *openapi3.SchemaRef, propOrder []string) *Schema {
    if ref == nil {
        return &Schema{}
    }
    if ref.Ref != "" {
        return &Schema{Ref: refName(ref.Ref)}
    }
    v := ref.Value
    if v == nil {
        return &Schema{}
    }

    s := &Schema{
        Type:        safeStr(v.Type),
        Format:      safeStr(v.Format),
        Description: strings.TrimSpace(v.Description),
        Required:    append([]string(nil), v.Required...),
        Deprecated:  v.Deprecated,
    }
    if v.Deprecated {
        s.DeprecationMsg = extensionString(v.Extensions, "x-deprecated-message")
    }
    if len(v.Enum) > 0 {
        s.Enum = append([]any(nil), v.Enum...)
    }
    if v.Items != nil {
        s.Items = toSchema(v.Items, nil)
    }
    if len(v.Properties) > 0 {
        for _, name := range orderedProps(v.Properties, propOrder) {
            s.Properties = append(s.Properties, Property{Name: name, Schema: toSchema(v.Properties[name], nil)})
        }
    }
    if v.AdditionalProperties.Schema != nil {
        s.AdditionalMode = AdditionalTyped
        s.AdditionalSchema = toSchema(v.AdditionalProperties.Schema, nil)
    } else if v.AdditionalProperties.Has != nil && *v.AdditionalProperties.Has {
        s.AdditionalMode = AdditionalAny
    }
    for _, r := range v.AllOf {
        s.AllOf = append(s.AllOf, toSchema(r, nil))
    }
    for _, r := range v.OneOf {
        s.OneOf = append(s.OneOf, toSchema(r, nil))
    }
    for _, r := range v.AnyOf {
        s.AnyOf = append(s.AnyOf, toSchema(r, nil))
    }
    return s
}

func orderedProps(props openapi3.Schemas, order []string) []string {
    seen := make(map[string]struct{}, len(props))
    out := make([]string, 0, len(props))
    for _, name := range order {
        if _, ok := props[name]; !ok {
            continue
        }
        if _, dup := seen[name]; dup {
            continue
        }
        seen[name] = struct{}{}
        out = append(out, name)
    }
    rest := make([]string, 0, len(props))
    for name := range props {
        if _, ok := seen[name]; !ok {
            rest = append(rest, name)
        }
    }
    sort.Strings(rest)
    return append(out, rest...)
}

// refName substitutes a reference by its tail name only; refs are not
// resolved or inlined.
func refName(ref string) string {
    if i := strings.LastIndex(ref, "/"); i >= 0 {
        return ref[i+1:]
    }
    return ref
}

func safeStr(s string) string { return strings.TrimSpace(s) }

func extensionString(ext map[string]any, key string) string {
    v, ok := ext[key]
    if !ok {
        return ""
    }
    switch t := v.(type) {
    case string:
        return t
    case json.RawMessage:
        var s string
        if err := json.Unmarshal(t, &s); err == nil {
            return s
        }
    }
    return ""
}
