// Package testutil provides test helpers shared across packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Module describes a module directory to lay out with WriteModules.
type Module struct {
	Dir        string
	Name       string
	PageName   string
	PageTitle  string
	APIBaseURL string
}

// WriteModule writes dir/<m.Dir>/module.yaml and returns its path.
// Dir defaults to Name.
func WriteModule(t *testing.T, dir string, m Module) string {
	t.Helper()
	sub := m.Dir
	if sub == "" {
		sub = m.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "moduleName: %q\n", m.Name)
	if m.PageName != "" {
		fmt.Fprintf(&b, "pageName: %q\n", m.PageName)
	}
	if m.PageTitle != "" {
		fmt.Fprintf(&b, "pageTitle: %q\n", m.PageTitle)
	}
	if m.APIBaseURL != "" {
		fmt.Fprintf(&b, "apiBaseUrl: %q\n", m.APIBaseURL)
	}
	return WriteFile(t, dir, filepath.Join(sub, "module.yaml"), b.String())
}

// ModulesDir creates a temporary modules directory populated with mods.
func ModulesDir(t *testing.T, mods ...Module) string {
	t.Helper()
	dir := t.TempDir()
	for _, m := range mods {
		WriteModule(t, dir, m)
	}
	return dir
}
