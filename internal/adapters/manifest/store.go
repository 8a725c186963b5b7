// Package manifest reads and updates package.json manifests.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	fieldDependencies    = "dependencies"
	fieldDevDependencies = "devDependencies"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the package.json in dir.
func (s *Store) Read(dir string) (*domain.Manifest, error) {
	path := filepath.Join(dir, domain.ManifestFileName)

	//nolint:gosec // Manifests are read from directories the user points at
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "read manifest"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	m.Bin.Normalize(m.Name)
	m.Dir = dir

	return &m, nil
}

// FindNearest walks up from start to the first directory holding a
// package.json. The walk ends after visiting stop, or at the filesystem root.
func (s *Store) FindNearest(start, stop string) (*domain.Manifest, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}
	if stop != "" {
		stop = filepath.Clean(stop)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, domain.ManifestFileName)); err == nil {
			return s.Read(dir)
		}

		parent := filepath.Dir(dir)
		if dir == stop || parent == dir {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "find nearest manifest"), "start", start)
		}
		dir = parent
	}
}

// SaveDependency records name@rng under dependencies, or devDependencies
// when dev is set, removing it from the other map.
func (s *Store) SaveDependency(dir, name, rng string, dev bool) error {
	target, other := fieldDependencies, fieldDevDependencies
	if dev {
		target, other = other, target
	}
	return s.update(dir, func(doc []byte) ([]byte, error) {
		doc, err := deleteKey(doc, other, name)
		if err != nil {
			return nil, err
		}
		return sjson.SetBytes(doc, target+"."+escapeKey(name), rng)
	})
}

// DropDependency removes name from both dependency maps.
func (s *Store) DropDependency(dir, name string) error {
	return s.update(dir, func(doc []byte) ([]byte, error) {
		doc, err := deleteKey(doc, fieldDependencies, name)
		if err != nil {
			return nil, err
		}
		return deleteKey(doc, fieldDevDependencies, name)
	})
}

func deleteKey(doc []byte, field, name string) ([]byte, error) {
	path := field + "." + escapeKey(name)
	if !gjson.GetBytes(doc, path).Exists() {
		return doc, nil
	}
	return sjson.DeleteBytes(doc, path)
}

// escapeKey escapes the path syntax characters of a package name so it is
// read as a single object key.
func escapeKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// update edits the raw manifest, so keys keep their order and values the
// model does not know keep their literal text.
func (s *Store) update(dir string, edit func([]byte) ([]byte, error)) error {
	path := filepath.Join(dir, domain.ManifestFileName)

	//nolint:gosec // Manifests are read from directories the user points at
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return zerr.With(zerr.Wrap(domain.ErrManifestParseFailed, "not a JSON object"), "path", path)
	}

	out, err := edit(data)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	out = append(bytes.TrimRight(pretty.Pretty(out), "\n"), '\n')

	if err := os.WriteFile(path, out, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}
