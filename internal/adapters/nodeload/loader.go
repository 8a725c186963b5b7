// Package nodeload implements the host runtime's module lookup rules.
package nodeload

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HostLoader = (*Loader)(nil)

// Extensions tried, in order, when a path does not name a file.
var extensions = []string{".js", ".json", ".node"}

// Loader implements ports.HostLoader with Node's file and directory rules.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// IsBuiltin reports whether name is a core module, with or without the
// "node:" scheme.
func (l *Loader) IsBuiltin(name string) bool {
	_, ok := builtins[strings.TrimPrefix(name, "node:")]
	return ok
}

// ResolveFile resolves path as a file, then as a directory with a manifest
// main entry or an index file.
func (l *Loader) ResolveFile(path string) (string, error) {
	if resolved, ok := resolveAsFile(path); ok {
		return resolved, nil
	}
	if resolved, ok := resolveAsDirectory(path); ok {
		return resolved, nil
	}
	return "", zerr.With(domain.ErrModuleNotFound, "path", path)
}

// ResolvePackage searches the node_modules directories from fromDir up to
// the filesystem root.
func (l *Loader) ResolvePackage(specifier, fromDir string) (string, error) {
	name, subpath := domain.SplitSpecifier(specifier)

	dir := fromDir
	for {
		if filepath.Base(dir) != domain.ModulesDirName {
			candidate := filepath.Join(domain.ModulesPath(dir), filepath.FromSlash(name))
			if isDir(candidate) {
				if resolved, err := l.ResolveFile(filepath.Join(candidate, filepath.FromSlash(subpath))); err == nil {
					return resolved, nil
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrModuleNotFound, "specifier", specifier)
		}
		dir = parent
	}
}

func resolveAsFile(path string) (string, bool) {
	if isFile(path) {
		return path, true
	}
	for _, ext := range extensions {
		if isFile(path + ext) {
			return path + ext, true
		}
	}
	return "", false
}

func resolveAsDirectory(dir string) (string, bool) {
	if !isDir(dir) {
		return "", false
	}

	if main := readMain(dir); main != "" {
		target := filepath.Join(dir, filepath.FromSlash(main))
		if resolved, ok := resolveAsFile(target); ok {
			return resolved, true
		}
		if resolved, ok := resolveIndex(target); ok {
			return resolved, true
		}
	}
	return resolveIndex(dir)
}

func resolveIndex(dir string) (string, bool) {
	for _, ext := range extensions {
		candidate := filepath.Join(dir, "index"+ext)
		if isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func readMain(dir string) string {
	//nolint:gosec // Manifest path is derived from the module being resolved
	data, err := os.ReadFile(filepath.Join(dir, domain.ManifestFileName))
	if err != nil {
		return ""
	}
	var m struct {
		Main string `json:"main"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	return m.Main
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
