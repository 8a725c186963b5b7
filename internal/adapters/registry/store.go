// Package registry persists the shared package registry as a JSON document.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/zerr"
)

var _ ports.RegistryStore = (*Store)(nil)

// Store implements ports.RegistryStore on a single JSON document under the
// registry root. It assumes a single writer.
type Store struct {
	root     string
	fetcher  ports.PackageFetcher
	registry *domain.Registry
	digest   uint64
}

// NewStore creates a Store rooted at root. The fetcher is only used for
// remote lookups and may be nil when those are never requested.
func NewStore(root string, fetcher ports.PackageFetcher) *Store {
	return &Store{root: root, fetcher: fetcher}
}

// Root returns the registry root directory.
func (s *Store) Root() string {
	return s.root
}

// Load reads the registry document, replacing a missing or corrupt one with
// an empty registry that is written back immediately.
func (s *Store) Load() error {
	path := domain.RegistryPath(s.root)

	//nolint:gosec // Path is derived from the configured registry root
	data, err := os.ReadFile(path)
	if err == nil {
		reg := domain.NewRegistry()
		if jsonErr := json.Unmarshal(data, reg); jsonErr == nil {
			s.registry = repair(reg)
			s.digest = xxhash.Sum64(data)
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", path)
	}

	s.registry = domain.NewRegistry()
	return s.Save()
}

// Save writes the registry through a temp file and a rename.
func (s *Store) Save() error {
	reg := s.Registry()

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrRegistryMarshalFailed.Error())
	}

	path := domain.RegistryPath(s.root)
	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error()), "path", path)
	}

	s.digest = xxhash.Sum64(data)
	return nil
}

// Registry returns the in-memory registry. A store that was never loaded
// starts empty.
func (s *Store) Registry() *domain.Registry {
	if s.registry == nil {
		s.registry = domain.NewRegistry()
	}
	return s.registry
}

// Digest returns the xxhash of the document as last loaded or saved.
func (s *Store) Digest() uint64 {
	return s.digest
}

// Find resolves name@rng against the installed versions.
func (s *Store) Find(
	ctx context.Context,
	name, rng string,
	opts domain.FindOptions,
) (domain.FindResult, error) {
	var res domain.FindResult

	reg := s.Registry()
	if v, ok := version.BestSatisfying(rng, reg.Versions(name)); ok {
		res.Entry = reg.Entry(name, v)
	}

	if !opts.CheckRemote {
		return res, nil
	}
	if s.fetcher == nil {
		return res, zerr.With(domain.ErrRemoteQueryFailed, "package", name)
	}

	latest, err := s.fetcher.LatestVersion(ctx, name)
	if err != nil {
		return res, zerr.With(err, "package", name)
	}
	res.Latest = latest
	res.Outdated = res.Entry == nil || version.Newer(latest, res.Entry.Version)

	return res, nil
}

// repair fills maps and identity fields a hand-edited document may lack.
func repair(reg *domain.Registry) *domain.Registry {
	if reg.Packages == nil {
		reg.Packages = make(map[string]map[string]*domain.PackageEntry)
	}
	if reg.InitialInstallRequests == nil {
		reg.InitialInstallRequests = make(map[string]map[string]domain.InstallRequest)
	}
	for name, versions := range reg.Packages {
		for v, entry := range versions {
			if entry == nil {
				delete(versions, v)
				continue
			}
			entry.Name = name
			entry.Version = v
			entry.Edges(domain.EdgeDependents)
			entry.Edges(domain.EdgeLocalUsers)
		}
		if len(versions) == 0 {
			delete(reg.Packages, name)
		}
	}
	return reg
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".registry-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
