package rustgen

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// AliasDirective is one supplemental type alias the SDK client code expects
// but the source document does not declare. Static configuration, not
// derived from input.
type AliasDirective struct {
	Alias  string
	Target string
	Doc    string
}

// aliasDirectives maps SDK-facing names onto generated schema names. An
// entry is skipped at emission time when its alias collides with a schema
// name already present in the document.
var aliasDirectives = []AliasDirective{
	// Job types
	{"Job", "JobResponse", "Single job response."},
	{"JobList", "ListJobsOutputBody", "Job list response."},
	{"JobResults", "serde_json::Value", "Job extraction results (dynamic JSON)."},

	// Schema types
	{"Schema", "SchemaOutput", "Schema response."},
	{"SchemaList", "ListSchemasOutputBody", "Schema list response."},
	{"CreateSchemaRequest", "CreateSchemaInputBody", "Schema creation request."},

	// Site types
	{"Site", "SavedSiteOutput", "Saved site response."},
	{"SiteList", "ListSavedSitesOutputBody", "Saved site list response."},
	{"CreateSiteRequest", "CreateSavedSiteInputBody", "Site creation request."},

	// API key types
	{"ApiKeyList", "ListKeysOutputBody", "API key list response."},
	{"ApiKeyCreated", "CreateKeyOutputBody", "API key creation response."},

	// LLM key types
	{"LlmKey", "UserServiceKeyResponse", "User LLM service key response."},
	{"LlmKeyList", "ListUserServiceKeysOutputBody", "LLM service key list response."},
	{"UpsertLlmKeyRequest", "UserServiceKeyInput", "LLM key upsert request."},

	// LLM chain types
	{"LlmChain", "GetUserFallbackChainOutputBody", "LLM fallback chain."},
	{"LlmChainEntry", "UserFallbackChainEntryInput", "LLM fallback chain entry."},

	// Model types
	{"ModelList", "UserListModelsOutputBody", "Model list response."},

	// Extract types
	{"ExtractRequest", "ExtractInputBody", "Extract request."},
	{"ExtractResponse", "ExtractOutputBody", "Extract response."},

	// Crawl types
	{"CrawlRequest", "CreateCrawlJobInputBody", "Crawl request."},
	{"CrawlJobCreated", "CrawlJobResponseBody", "Crawl job created response."},

	// Analyze types
	{"AnalyzeRequest", "AnalyzeInputBody", "Analyze request."},
	{"AnalyzeResponse", "AnalyzeResponseBody", "Analyze response."},
}

const headerTemplate = `//! API types for the Refyne SDK.
//!
//! These types are generated from the OpenAPI specification.
//! Do not edit this file manually - run ` + "`make generate`" + ` to regenerate.
//!
//! Generated from API version: {{ .APIVersion }}

#![allow(dead_code)]

use serde::{Deserialize, Serialize};
`

const supplementalTemplate = `{{- $bar := printf "// %s" (repeat 76 "=") -}}
{{ $bar }}
// Additional Types (not in OpenAPI spec but required by SDK)
{{ $bar }}

/// Response containing available LLM providers.
#[derive(Debug, Clone, Deserialize)]
pub struct ProvidersResponse {
    /// List of available provider names.
    pub providers: Vec<String>,
}

{{ if .IncludeModel -}}
/// Available LLM model.
#[derive(Debug, Clone, Deserialize)]
pub struct Model {
    /// Model identifier.
    pub id: String,
    /// Display name.
    pub name: String,
}

{{ end -}}
{{ $bar }}
// Type Aliases for Client Compatibility
{{ $bar }}
{{ range .Aliases }}
/// {{ .Doc }}
pub type {{ .Alias }} = {{ .Target }};
{{ end -}}
`

var (
	headerTmpl       = template.Must(template.New("header").Funcs(sprig.TxtFuncMap()).Parse(headerTemplate))
	supplementalTmpl = template.Must(template.New("supplemental").Funcs(sprig.TxtFuncMap()).Parse(supplementalTemplate))
)

// renderHeader renders the fixed file header as output lines.
func renderHeader(apiVersion string) []string {
	var b strings.Builder
	if err := headerTmpl.Execute(&b, struct{ APIVersion string }{apiVersion}); err != nil {
		// Static template over a string field; execution cannot fail.
		panic(err)
	}
	return strings.Split(b.String(), "\n")
}

// renderSupplemental renders the hand-authored declarations and the alias
// table. schemaNames filters colliding aliases; includeModel is false when
// an other-classified schema already declares Model.
func renderSupplemental(schemaNames map[string]struct{}, includeModel bool) []string {
	aliases := make([]AliasDirective, 0, len(aliasDirectives))
	for _, a := range aliasDirectives {
		if _, exists := schemaNames[a.Alias]; exists {
			continue
		}
		aliases = append(aliases, a)
	}
	var b strings.Builder
	data := struct {
		IncludeModel bool
		Aliases      []AliasDirective
	}{includeModel, aliases}
	if err := supplementalTmpl.Execute(&b, data); err != nil {
		panic(err)
	}
	return strings.Split(b.String(), "\n")
}
