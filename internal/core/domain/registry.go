package domain

import (
	"sort"
	"time"
)

// EdgeKind selects which consumer map of a PackageEntry an edge lives in.
type EdgeKind int

const (
	// EdgeDependents records shared packages that depend on an entry.
	EdgeDependents EdgeKind = iota
	// EdgeLocalUsers records projects that depend on an entry.
	EdgeLocalUsers
)

// String returns the persisted field name of the edge kind.
func (k EdgeKind) String() string {
	if k == EdgeLocalUsers {
		return "localusers"
	}
	return "dependents"
}

// Edge is the consumer side of a dependency relationship.
type Edge struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// EdgeSet maps consumer name to consumer version to the edge.
type EdgeSet map[string]map[string]Edge

// Add inserts the edge, replacing an existing one for the same consumer.
func (s EdgeSet) Add(name string, e Edge) {
	if s[name] == nil {
		s[name] = make(map[string]Edge)
	}
	s[name][e.Version] = e
}

// Remove deletes the edge of name@version and reports whether it existed.
func (s EdgeSet) Remove(name, version string) bool {
	versions, ok := s[name]
	if !ok {
		return false
	}
	if _, ok := versions[version]; !ok {
		return false
	}
	delete(versions, version)
	if len(versions) == 0 {
		delete(s, name)
	}
	return true
}

// Has reports whether an edge for name@version exists.
func (s EdgeSet) Has(name, version string) bool {
	_, ok := s[name][version]
	return ok
}

// Consumers flattens the set into a deterministic list.
func (s EdgeSet) Consumers() []Consumer {
	var out []Consumer
	for name, versions := range s {
		for _, e := range versions {
			out = append(out, Consumer{Name: name, Version: e.Version, Path: e.Path})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version < out[j].Version
	})
	return out
}

// PackageRef names one installed version.
type PackageRef struct {
	Name    string
	Version string
}

// Consumer identifies a package or project that depends on something.
type Consumer struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// PackageEntry is one concrete installed version of one package.
type PackageEntry struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Path         string            `json:"path"`
	Bin          BinMap            `json:"bin,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Dependents   EdgeSet           `json:"dependents"`
	LocalUsers   EdgeSet           `json:"localusers"`
	LastUsed     time.Time         `json:"lastUsed"`
}

// Edges returns the edge set of the given kind, allocating it on first use.
func (e *PackageEntry) Edges(kind EdgeKind) EdgeSet {
	if kind == EdgeLocalUsers {
		if e.LocalUsers == nil {
			e.LocalUsers = make(EdgeSet)
		}
		return e.LocalUsers
	}
	if e.Dependents == nil {
		e.Dependents = make(EdgeSet)
	}
	return e.Dependents
}

// InUse reports whether any consumer still depends on the entry.
func (e *PackageEntry) InUse() bool {
	return len(e.Dependents) > 0 || len(e.LocalUsers) > 0
}

// InstallRequest records the project that first asked for a package range.
type InstallRequest struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Path        string    `json:"path"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Registry is the catalog of installed package versions and their relationships.
type Registry struct {
	InitialInstallRequests map[string]map[string]InstallRequest `json:"initialInstallRequests"`
	Packages               map[string]map[string]*PackageEntry  `json:"packages"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		InitialInstallRequests: make(map[string]map[string]InstallRequest),
		Packages:               make(map[string]map[string]*PackageEntry),
	}
}

// Entry returns the entry for name@version or nil.
func (r *Registry) Entry(name, version string) *PackageEntry {
	return r.Packages[name][version]
}

// Versions returns the registered versions of name in lexical order.
// Callers needing precedence order sort through the version package.
func (r *Registry) Versions(name string) []string {
	versions := make([]string, 0, len(r.Packages[name]))
	for v := range r.Packages[name] {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Names returns every registered package name in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Packages))
	for n := range r.Packages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Put stores the entry under its identity, replacing an existing one.
func (r *Registry) Put(entry *PackageEntry) {
	if r.Packages[entry.Name] == nil {
		r.Packages[entry.Name] = make(map[string]*PackageEntry)
	}
	r.Packages[entry.Name][entry.Version] = entry
}

// Delete removes name@version. The name node goes away only once its last
// version is gone.
func (r *Registry) Delete(name, version string) {
	versions, ok := r.Packages[name]
	if !ok {
		return
	}
	delete(versions, version)
	if len(versions) == 0 {
		delete(r.Packages, name)
	}
}

// RecordRequest stores the first project that asked for name@rng.
func (r *Registry) RecordRequest(name, rng string, req InstallRequest) {
	if r.InitialInstallRequests[name] == nil {
		r.InitialInstallRequests[name] = make(map[string]InstallRequest)
	}
	if _, ok := r.InitialInstallRequests[name][rng]; ok {
		return
	}
	r.InitialInstallRequests[name][rng] = req
}

// FindResult is the answer of a registry lookup.
type FindResult struct {
	// Entry is the best satisfying installed version, nil when none.
	Entry *PackageEntry
	// Latest is the newest published version, set only for remote lookups.
	Latest string
	// Outdated reports that Latest is newer than Entry.
	Outdated bool
}

// FindOptions controls a registry lookup.
type FindOptions struct {
	CheckRemote bool
}
