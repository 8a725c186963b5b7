package ports

import "go.trai.ch/bridge/internal/core/domain"

// Linker creates the symlinks and shims that expose shared packages.
//
//go:generate mockgen -source=linker.go -destination=mocks/mock_linker.go -package=mocks
type Linker interface {
	// Symlink points link at target, replacing a stale link.
	Symlink(target, link string) error

	// Shim exposes the executable at target as name inside binDir.
	Shim(binDir, name, target string) error

	// RemoveShim deletes the shim called name inside binDir.
	RemoveShim(binDir, name string) error

	// Unlink removes link when it is a symlink pointing inside root and
	// reports whether it did.
	Unlink(link, root string) (bool, error)

	// Capabilities returns the platform descriptor the linker works with.
	Capabilities() domain.Capabilities
}
