package rustgen

import (
	"strings"
	"unicode"
)

// rustKeywords are identifiers that cannot be used as raw Rust field names.
var rustKeywords = map[string]struct{}{
	"type": {}, "fn": {}, "let": {}, "const": {}, "static": {}, "mut": {},
	"ref": {}, "self": {}, "super": {}, "crate": {}, "mod": {}, "pub": {},
	"use": {}, "struct": {}, "enum": {}, "trait": {}, "impl": {}, "for": {},
	"where": {}, "loop": {}, "while": {}, "if": {}, "else": {}, "match": {},
	"return": {}, "break": {}, "continue": {}, "move": {}, "box": {},
	"async": {}, "await": {}, "dyn": {}, "abstract": {}, "become": {},
	"do": {}, "final": {}, "macro": {}, "override": {}, "priv": {},
	"typeof": {}, "unsized": {}, "virtual": {}, "yield": {}, "try": {},
	"union": {}, "in": {}, "as": {},
}

// EscapeKeyword prefixes Rust keywords with r# so they are legal field
// identifiers. Non-keywords pass through unchanged.
func EscapeKeyword(name string) string {
	if _, ok := rustKeywords[name]; ok {
		return "r#" + name
	}
	return name
}

// IsKeyword reports whether name is a reserved Rust word.
func IsKeyword(name string) bool {
	_, ok := rustKeywords[name]
	return ok
}

// ToSnakeCase converts camelCase or PascalCase to snake_case. An underscore
// is inserted before an uppercase rune when the previous rune is lowercase,
// or when the following rune is lowercase (so acronym runs like "APIKey"
// become "api_key").
func ToSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToPascalCase converts snake_case or kebab-case to PascalCase. Each
// separator-delimited word is capitalized with the remainder lowercased, so
// "in-progress" becomes "InProgress" and "userId" becomes "Userid".
func ToPascalCase(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.Grow(len(name))
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(strings.ToLower(string(r[1:])))
	}
	return b.String()
}
