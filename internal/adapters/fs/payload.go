// Package fs moves package payloads on disk and builds the links that expose them.
package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PayloadStore = (*PayloadStore)(nil)

// payloadPatterns match package directories in nested module trees, scoped
// packages one level deeper.
var payloadPatterns = []string{
	"**/" + domain.ModulesDirName + "/*",
	"**/" + domain.ModulesDirName + "/@*/*",
}

// PayloadStore implements ports.PayloadStore.
type PayloadStore struct{}

// NewPayloadStore creates a new PayloadStore.
func NewPayloadStore() *PayloadStore {
	return &PayloadStore{}
}

// Discover lists the package directories below scratch, shallowest first.
// Directories without a manifest, dot entries, and scope directories
// themselves are not payloads.
func (p *PayloadStore) Discover(scratch string) ([]domain.Payload, error) {
	fsys := os.DirFS(scratch)
	seen := make(map[string]bool)
	var payloads []domain.Payload

	for _, pattern := range payloadPatterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFailOnIOErrors(), doublestar.WithNoFollow())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPayloadDiscoveryFailed.Error()), "scratch", scratch)
		}

		for _, rel := range matches {
			base := filepath.Base(rel)
			if seen[rel] || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "@") {
				continue
			}
			dir := filepath.Join(scratch, filepath.FromSlash(rel))
			if _, err := os.Stat(filepath.Join(dir, domain.ManifestFileName)); err != nil {
				continue
			}
			seen[rel] = true
			payloads = append(payloads, newPayload(scratch, rel, dir))
		}
	}

	sort.Slice(payloads, func(i, j int) bool {
		if payloads[i].Depth != payloads[j].Depth {
			return payloads[i].Depth < payloads[j].Depth
		}
		return payloads[i].Dir < payloads[j].Dir
	})
	return payloads, nil
}

// newPayload derives depth and parent from the slash-separated path rel.
func newPayload(scratch, rel, dir string) domain.Payload {
	parts := strings.Split(rel, "/")
	depth := 0
	last := -1
	for i, part := range parts {
		if part == domain.ModulesDirName {
			depth++
			last = i
		}
	}

	payload := domain.Payload{Dir: dir, Depth: depth}
	if last > 0 {
		payload.Parent = filepath.Join(scratch, filepath.Join(parts[:last]...))
	}
	return payload
}

// Absorb replaces dst with a copy of src. The copy is staged next to dst
// and swapped in only once complete, so a failed copy leaves dst untouched.
// Nested module trees are left behind; consumers reach them through links.
func (p *PayloadStore) Absorb(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error()), "path", dst)
	}
	staging, err := os.MkdirTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".incoming-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error()), "path", dst)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Gone after a successful rename

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return err
		}
		if d.IsDir() && d.Name() == domain.ModulesDirName {
			return fastwalk.SkipDir
		}
		return copyEntry(path, filepath.Join(staging, rel), d)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error()), "source", src)
	}

	if err := os.Chmod(staging, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error()), "path", dst)
	}
	if err := os.RemoveAll(dst); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error()), "path", dst)
	}
	if err := os.Rename(staging, dst); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error()), "path", dst)
	}
	return nil
}

// Remove deletes a payload directory. A missing directory is not an error.
func (p *PayloadStore) Remove(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPayloadRemoveFailed.Error()), "path", dir)
	}
	// Drop the empty name directory left behind by the last version.
	parent := filepath.Dir(dir)
	if entries, err := os.ReadDir(parent); err == nil && len(entries) == 0 {
		_ = os.Remove(parent)
	}
	return nil
}

// copyEntry runs concurrently for entries of the same tree, so every branch
// creates its parent directory itself.
func copyEntry(src, dst string, d iofs.DirEntry) error {
	switch {
	case d.IsDir():
		return os.MkdirAll(dst, domain.DirPerm)
	case d.Type()&iofs.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return err
		}
		return os.Symlink(target, dst)
	case d.Type().IsRegular():
		return copyFile(src, dst)
	default:
		return nil
	}
}

func copyFile(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // src is inside a scratch area we created
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	//nolint:gosec // dst is inside the registry root
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
