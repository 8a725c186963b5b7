package domain

import (
	"encoding/json"
	"path"
)

// BinMap maps executable names to paths relative to the package directory.
type BinMap map[string]string

// UnmarshalJSON accepts both the object form and the single string form of
// "bin". The string form is stored under the empty key until Normalize
// assigns the package name to it.
func (b *BinMap) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*b = BinMap{"": single}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*b = m
	return nil
}

// Normalize names the single string form after the package.
func (b BinMap) Normalize(pkg string) {
	target, ok := b[""]
	if !ok {
		return
	}
	delete(b, "")
	if pkg != "" {
		b[path.Base(pkg)] = target
	}
}

// Manifest is a project or package manifest.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main,omitempty"`
	Bin             BinMap            `json:"bin,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`

	// Dir is the directory holding the manifest.
	Dir string `json:"-"`
}

// Consumer returns the manifest as a consumer identity.
func (m *Manifest) Consumer() Consumer {
	return Consumer{Name: m.Name, Version: m.Version, Path: m.Dir}
}

// Declared returns the dependency ranges to act on. Dev dependencies are
// included when withDev is set; a regular declaration wins on conflict.
func (m *Manifest) Declared(withDev bool) map[string]string {
	out := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	if withDev {
		for name, rng := range m.DevDependencies {
			out[name] = rng
		}
	}
	for name, rng := range m.Dependencies {
		out[name] = rng
	}
	return out
}

// Range returns the declared range for name, looking at dependencies first
// and dev dependencies second.
func (m *Manifest) Range(name string) (string, bool) {
	if rng, ok := m.Dependencies[name]; ok {
		return rng, true
	}
	rng, ok := m.DevDependencies[name]
	return rng, ok
}
