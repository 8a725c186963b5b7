package ports

import (
	"context"

	"go.trai.ch/bridge/internal/core/domain"
)

// RegistryStore owns the persisted registry of installed packages.
//
//go:generate mockgen -source=registry_store.go -destination=mocks/mock_registry_store.go -package=mocks
type RegistryStore interface {
	// Root returns the registry root directory.
	Root() string

	// Load reads the registry document. A missing or corrupt document is
	// replaced by an empty registry, which is persisted immediately.
	Load() error

	// Save writes the in-memory registry to disk.
	Save() error

	// Registry returns the in-memory registry, loading it on first use.
	Registry() *domain.Registry

	// Find returns the highest installed version of name satisfying rng. With
	// CheckRemote it also reports the newest published version.
	Find(ctx context.Context, name, rng string, opts domain.FindOptions) (domain.FindResult, error)

	// Digest identifies the content of the registry as last loaded or saved.
	Digest() uint64
}
