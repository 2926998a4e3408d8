// Package testutil provides fixtures for CLI tests: input documents and
// runner config files in a temporary directory.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// SpecCase is one jd spec invocation laid out on disk.
type SpecCase struct {
	Dir   string // Temporary directory holding every file
	PathA string // First input document
	PathB string // Second input document
}

// SetupSpecCase writes documents a and b into a fresh temporary directory.
// An empty string produces an empty file, which the runner treats as void.
func SetupSpecCase(t *testing.T, a, b string) SpecCase {
	t.Helper()

	dir := t.TempDir()
	sc := SpecCase{
		Dir:   dir,
		PathA: filepath.Join(dir, "a.json"),
		PathB: filepath.Join(dir, "b.json"),
	}
	if err := os.WriteFile(sc.PathA, []byte(a), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", sc.PathA, err)
	}
	if err := os.WriteFile(sc.PathB, []byte(b), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", sc.PathB, err)
	}
	return sc
}

// WriteConfig marshals cfg as YAML into dir/name and returns the path.
func WriteConfig(t *testing.T, dir, name string, cfg map[string]any) string {
	t.Helper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// SQLiteConfig returns a config for the in-memory sqlite engine running sql.
func SQLiteConfig(sql string) map[string]any {
	return map[string]any{
		"engine": "sqlite",
		"sql":    sql,
	}
}
