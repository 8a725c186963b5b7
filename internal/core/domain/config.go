package domain

// Config holds the runtime settings of the registry.
type Config struct {
	// Root is the registry root directory.
	Root string `envconfig:"ROOT"`
	// Client is the package-fetching client executable.
	Client string `envconfig:"CLIENT"`
	// GlobalBinDir receives global shims from link-bin.
	GlobalBinDir string `envconfig:"GLOBAL_BIN"`
	// LogJSON switches the logger to JSON output.
	LogJSON bool `envconfig:"LOG_JSON"`
	// Home bounds the manifest walk of the resolver.
	Home string `ignored:"true"`
}
