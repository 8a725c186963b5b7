package ports

import "go.trai.ch/bridge/internal/core/domain"

// ManifestStore reads project and package manifests.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Read loads the manifest in dir.
	Read(dir string) (*domain.Manifest, error)

	// FindNearest walks up from start until a manifest is found. The walk
	// stops after stop, or at the filesystem root when stop is empty.
	FindNearest(start, stop string) (*domain.Manifest, error)

	// SaveDependency records name with rng in the manifest of dir.
	SaveDependency(dir, name, rng string, dev bool) error

	// DropDependency removes name from both dependency maps of the manifest in dir.
	DropDependency(dir, name string) error
}
