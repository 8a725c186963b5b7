package config

// Configfile represents the structure of the config.yaml file in the registry root.
type Configfile struct {
	Root      string `yaml:"root"`
	Client    string `yaml:"client"`
	GlobalBin string `yaml:"globalBin"`
	LogJSON   *bool  `yaml:"logJSON"`
}
