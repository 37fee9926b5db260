package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesSampleConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "openapi2rust.yaml")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", out})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	content := string(data)
	for _, key := range []string{"url:", "file:", "output:", "dryRun:", "verbose:"} {
		if !strings.Contains(content, key) {
			t.Errorf("sample config missing %q", key)
		}
	}
	if !strings.HasSuffix(content, "\n") {
		t.Errorf("sample config must end with newline")
	}
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "openapi2rust.yaml")
	if err := os.WriteFile(out, []byte("keep: me\n"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", out})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "keep: me\n" {
		t.Fatalf("existing file must be untouched: %q %v", data, err)
	}

	// Force overwrites.
	root = NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--out", out, "--force"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute with force: %v", err)
	}
	data, err = os.ReadFile(out)
	if err != nil || !strings.Contains(string(data), "openapi2rust configuration") {
		t.Fatalf("expected sample config after force: %v", err)
	}
}
