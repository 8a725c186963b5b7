package ports

// HostLoader is the host runtime's own module lookup.
//
//go:generate mockgen -source=host_loader.go -destination=mocks/mock_host_loader.go -package=mocks
type HostLoader interface {
	// IsBuiltin reports whether name is a core module of the host runtime.
	IsBuiltin(name string) bool

	// ResolveFile resolves path as a file or directory module.
	ResolveFile(path string) (string, error)

	// ResolvePackage looks specifier up in the node_modules directories
	// above fromDir.
	ResolvePackage(specifier, fromDir string) (string, error)
}
