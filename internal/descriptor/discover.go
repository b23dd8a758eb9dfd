package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
)

// Discover reads one descriptor per immediate subdirectory of dir.
//
// Subdirectories without a descriptor file are skipped. A missing dir is a
// configuration gap and yields an empty registry.
func Discover(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			output.Debug("modules directory not found, no modules discovered", "dir", dir)
			return NewRegistry()
		}
		return nil, fmt.Errorf("reading modules directory %s: %w", dir, err)
	}

	var descs []Descriptor
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path, ok := findFile(filepath.Join(dir, e.Name()))
		if !ok {
			output.Debug("skipping directory without descriptor", "dir", e.Name())
			continue
		}
		d, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}

	reg, err := NewRegistry(descs...)
	if err != nil {
		return nil, err
	}
	output.Debug("discovered modules", "dir", dir, "count", reg.Len())
	return reg, nil
}

// findFile returns the first descriptor file present in moduleDir.
func findFile(moduleDir string) (string, bool) {
	for _, name := range fileNames {
		p := filepath.Join(moduleDir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// ReadFile parses a single descriptor file. Unknown fields are rejected.
func ReadFile(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("reading descriptor: %w", err)
	}

	var d Descriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Descriptor{}, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Hint:     "Descriptor files accept moduleName, pageName, pageTitle and apiBaseUrl.",
			Cause:    oerrors.ErrValidation,
		}
	}
	d.Path = path
	return d, nil
}
