package rustgen

import (
	"strings"

	"github.com/refyne/openapi2rust/internal/spec"
)

// Category buckets a named schema by the naming convention of the source
// API: pure enumerations, request-shaped types, response-shaped types, and
// everything else.
type Category int

const (
	CategoryEnum Category = iota
	CategoryRequest
	CategoryResponse
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryEnum:
		return "enum"
	case CategoryRequest:
		return "request"
	case CategoryResponse:
		return "response"
	default:
		return "other"
	}
}

// Groups holds the classified schemas, each bucket preserving the original
// document order.
type Groups struct {
	Enums     []spec.NamedSchema
	Requests  []spec.NamedSchema
	Responses []spec.NamedSchema
	Others    []spec.NamedSchema
}

// IsRequestName reports whether a type name names a request body type.
// OutputBody and ResponseBody share the Body suffix with InputBody but are
// response types, so they are checked first.
func IsRequestName(name string) bool {
	if strings.HasSuffix(name, "OutputBody") || strings.HasSuffix(name, "ResponseBody") {
		return false
	}
	return strings.HasSuffix(name, "Request") ||
		strings.HasSuffix(name, "Input") ||
		strings.HasSuffix(name, "InputBody")
}

// IsResponseName reports whether a type name names a response type.
func IsResponseName(name string) bool {
	return strings.HasSuffix(name, "Response") ||
		strings.HasSuffix(name, "Output") ||
		strings.HasSuffix(name, "Result") ||
		strings.HasSuffix(name, "OutputBody") ||
		strings.HasSuffix(name, "ResponseBody")
}

// ClassifyName applies the classification rules in order, first match wins.
func ClassifyName(name string, s *spec.Schema) Category {
	if s.IsEnum() {
		return CategoryEnum
	}
	if IsRequestName(name) {
		return CategoryRequest
	}
	if IsResponseName(name) {
		return CategoryResponse
	}
	return CategoryOther
}

// Classify partitions the schemas into the four buckets.
func Classify(schemas []spec.NamedSchema) Groups {
	var g Groups
	for _, ns := range schemas {
		switch ClassifyName(ns.Name, ns.Schema) {
		case CategoryEnum:
			g.Enums = append(g.Enums, ns)
		case CategoryRequest:
			g.Requests = append(g.Requests, ns)
		case CategoryResponse:
			g.Responses = append(g.Responses, ns)
		default:
			g.Others = append(g.Others, ns)
		}
	}
	return g
}
