package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  secret-value \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "secret-value" {
		t.Fatalf("Load() = %q, want secret-value", got)
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	got, err := Load(Source{Name: "api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "from-file" {
		t.Fatalf("Load() = %q, want from-file", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("Load() error = %v, want not configured", err)
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   "), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(Source{Name: "api key", File: empty}); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("Load() error = %v, want empty-file error", err)
	}

	if _, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
