package rustgen

import "testing"

func TestToSnakeCase(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want string
	}{
		{"userId", "user_id"},
		{"createdAt", "created_at"},
		{"maxDepth", "max_depth"},
		{"simple", "simple"},
		{"already_snake", "already_snake"},
		{"APIKey", "api_key"},
		{"HTMLBody", "html_body"},
		{"ID", "id"},
		{"A", "a"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToSnakeCase(tc.in); got != tc.want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want string
	}{
		{"created_at", "CreatedAt"},
		{"in-progress", "InProgress"},
		{"active", "Active"},
		{"userId", "Userid"},
		{"gpt-4o", "Gpt4o"},
		{"__trailing", "Trailing"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToPascalCase(tc.in); got != tc.want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscapeKeyword(t *testing.T) {
	t.Parallel()
	if got := EscapeKeyword("type"); got != "r#type" {
		t.Errorf("type: got %q", got)
	}
	if got := EscapeKeyword("r#type"); got != "r#type" {
		t.Errorf("double escape: got %q", got)
	}
	if got := EscapeKeyword("name"); got != "name" {
		t.Errorf("non-keyword: got %q", got)
	}
	if !IsKeyword("match") || IsKeyword("url") {
		t.Errorf("keyword set mismatch")
	}
}
