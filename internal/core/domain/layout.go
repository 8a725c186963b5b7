package domain

import (
	"path/filepath"
	"strings"
)

const (
	// RootDirName is the name of the registry root directory under the user's home.
	RootDirName = ".bridge"

	// RegistryFileName is the name of the persisted registry document.
	RegistryFileName = ".registry.json"

	// BinDirName is the name of executable shim directories.
	BinDirName = ".bin"

	// ScratchDirName is the name of the directory holding per-install scratch areas.
	ScratchDirName = ".tmp"

	// ModulesDirName is the name of a consumer's local module directory.
	ModulesDirName = "node_modules"

	// ManifestFileName is the name of a project or package manifest.
	ManifestFileName = "package.json"

	// ConfigFileName is the name of the config file inside the registry root.
	ConfigFileName = "config.yaml"

	// DefaultClient is the package-fetching client invoked when none is configured.
	DefaultClient = "npm"

	// DefaultGlobalBinDir is where link-bin places global shims.
	DefaultGlobalBinDir = "/usr/local/bin"

	// DefaultVersion is assigned to payloads whose manifest carries no version.
	DefaultVersion = "1.0.0"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for shims and package executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// DefaultRoot returns the default registry root under home.
func DefaultRoot(home string) string {
	return filepath.Join(home, RootDirName)
}

// RegistryPath returns the location of the registry document under root.
func RegistryPath(root string) string {
	return filepath.Join(root, RegistryFileName)
}

// SharedBinPath returns the shared shim directory under root.
func SharedBinPath(root string) string {
	return filepath.Join(root, BinDirName)
}

// ScratchPath returns the scratch parent directory under root.
func ScratchPath(root string) string {
	return filepath.Join(root, ScratchDirName)
}

// PayloadPath returns where the payload of name@version lives under root.
// Scoped names nest one level deeper.
func PayloadPath(root, name, version string) string {
	return filepath.Join(root, filepath.FromSlash(name), version)
}

// ModulesPath returns the local module directory of the consumer at dir.
func ModulesPath(dir string) string {
	return filepath.Join(dir, ModulesDirName)
}

// LocalBinPath returns the local shim directory of the consumer at dir.
func LocalBinPath(dir string) string {
	return filepath.Join(dir, ModulesDirName, BinDirName)
}

// SplitSpecifier splits a bare module specifier into the package name and the
// subpath after it. Scoped names keep their scope: "@s/p/lib/x" yields
// ("@s/p", "lib/x").
func SplitSpecifier(specifier string) (name, subpath string) {
	parts := strings.Split(specifier, "/")
	n := 1
	if strings.HasPrefix(specifier, "@") && len(parts) > 1 {
		n = 2
	}
	if len(parts) <= n {
		return specifier, ""
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/")
}

// SplitRequest splits a command line request "name@range" into its parts.
// A leading "@" belongs to the scope, not the range.
func SplitRequest(request string) (name, rng string) {
	idx := strings.LastIndex(request, "@")
	if idx <= 0 {
		return request, ""
	}
	return request[:idx], request[idx+1:]
}
