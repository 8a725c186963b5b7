package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Linker = (*Linker)(nil)

// Linker implements ports.Linker with filesystem symlinks, or dispatch
// scripts where the platform lacks executable symlinks.
type Linker struct {
	caps domain.Capabilities
}

// NewLinker creates a Linker for the given platform capabilities.
func NewLinker(caps domain.Capabilities) *Linker {
	return &Linker{caps: caps}
}

// Capabilities returns the platform descriptor.
func (l *Linker) Capabilities() domain.Capabilities {
	return l.caps
}

// Symlink points link at target. An existing link to target is left alone,
// a link elsewhere is replaced, and anything else fails with ErrLinkOccupied.
func (l *Linker) Symlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "link", link)
	}

	fi, err := os.Lstat(link)
	switch {
	case err == nil && fi.Mode()&iofs.ModeSymlink != 0:
		if current, readErr := os.Readlink(link); readErr == nil && current == target {
			return nil
		}
		if err := os.Remove(link); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "link", link)
		}
	case err == nil:
		return zerr.With(domain.ErrLinkOccupied, "link", link)
	case !errors.Is(err, iofs.ErrNotExist):
		return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "link", link)
	}

	if err := os.Symlink(target, link); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "link", link)
	}
	return nil
}

// Shim exposes the executable at target as name inside binDir.
func (l *Linker) Shim(binDir, name, target string) error {
	if l.caps.SymlinkKind == domain.SymlinkNative {
		// Package tarballs do not always carry the executable bit.
		_ = os.Chmod(target, domain.ExecPerm)
		return l.Symlink(target, filepath.Join(binDir, name))
	}

	if err := os.MkdirAll(binDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "dir", binDir)
	}

	scripts := map[string]string{
		name:                           shScript(target),
		name + l.caps.ExecutableSuffix: cmdScript(target),
	}
	for file, content := range scripts {
		path := filepath.Join(binDir, file)
		//nolint:gosec // Shims must be executable
		if err := os.WriteFile(path, []byte(content), domain.ExecPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "shim", path)
		}
	}
	return nil
}

// RemoveShim deletes every file Shim may have created for name.
func (l *Linker) RemoveShim(binDir, name string) error {
	for _, file := range []string{name, name + l.caps.ExecutableSuffix} {
		if file == "" {
			continue
		}
		err := os.Remove(filepath.Join(binDir, file))
		if err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "shim", file)
		}
	}
	return nil
}

// Unlink removes link if it is a symlink resolving inside root.
func (l *Linker) Unlink(link, root string) (bool, error) {
	fi, err := os.Lstat(link)
	if err != nil || fi.Mode()&iofs.ModeSymlink == 0 {
		return false, nil
	}

	target, err := os.Readlink(link)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "link", link)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	if !Within(root, target) {
		return false, nil
	}

	if err := os.Remove(link); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "link", link)
	}
	return true, nil
}

// Within reports whether path lies inside root.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func shScript(target string) string {
	return "#!/bin/sh\nexec node \"" + filepath.ToSlash(target) + "\" \"$@\"\n"
}

func cmdScript(target string) string {
	return "@\"node\" \"" + target + "\" %*\r\n"
}
