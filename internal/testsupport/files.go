package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteRegistryFile stores RegistryDocument plus any extra records under dir
// and returns the file path.
func WriteRegistryFile(t testing.TB, dir string, extra ...string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for registry: %v", err)
	}
	path := filepath.Join(dir, "language-subtag-registry")
	if err := os.WriteFile(path, []byte(RegistryDocument+strings.Join(extra, "")), 0o644); err != nil {
		t.Fatalf("write registry %s: %v", path, err)
	}
	return path
}

// WriteLines writes one entry per line to path.
func WriteLines(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
