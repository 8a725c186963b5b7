package domain

// SymlinkKind describes how executables are exposed on a platform.
type SymlinkKind int

const (
	// SymlinkNative exposes executables through a direct symlink.
	SymlinkNative SymlinkKind = iota
	// SymlinkScript exposes executables through generated dispatch scripts.
	SymlinkScript
)

// Capabilities describes platform conventions for links and shims.
// It is resolved once at startup.
type Capabilities struct {
	ExecutableSuffix string
	SymlinkKind      SymlinkKind
}

// CapabilitiesFor returns the descriptor for the given GOOS.
func CapabilitiesFor(goos string) Capabilities {
	if goos == "windows" {
		return Capabilities{ExecutableSuffix: ".cmd", SymlinkKind: SymlinkScript}
	}
	return Capabilities{SymlinkKind: SymlinkNative}
}
