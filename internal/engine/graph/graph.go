// Package graph maintains the dependency edges between registry entries and
// runs the removal protocol on top of them.
package graph

import (
	"context"
	"path/filepath"
	"sort"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/zerr"
)

// Graph owns the dependents and localusers edges of the registry.
type Graph struct {
	store    ports.RegistryStore
	payloads ports.PayloadStore
	linker   ports.Linker
	logger   ports.Logger
}

// New creates a Graph with the given dependencies.
func New(
	store ports.RegistryStore,
	payloads ports.PayloadStore,
	linker ports.Linker,
	logger ports.Logger,
) *Graph {
	return &Graph{
		store:    store,
		payloads: payloads,
		linker:   linker,
		logger:   logger,
	}
}

// Connect records consumer on the dep entry without persisting. It reports
// whether the registry changed. Callers batching several mutations save the
// store themselves.
func (g *Graph) Connect(dep domain.PackageRef, consumer domain.Consumer, kind domain.EdgeKind) (bool, error) {
	entry := g.store.Registry().Entry(dep.Name, dep.Version)
	if entry == nil {
		return false, zerr.With(zerr.With(domain.ErrPackageNotInstalled, "package", dep.Name), "version", dep.Version)
	}

	edges := entry.Edges(kind)
	if current, ok := edges[consumer.Name][consumer.Version]; ok && current.Path == consumer.Path {
		return false, nil
	}
	edges.Add(consumer.Name, domain.Edge{Path: consumer.Path, Version: consumer.Version})
	return true, nil
}

// AddDependent records consumer on the dep entry and persists the registry.
// Recording an existing edge is a no-op.
func (g *Graph) AddDependent(dep domain.PackageRef, consumer domain.Consumer, kind domain.EdgeKind) error {
	changed, err := g.Connect(dep, consumer, kind)
	if err != nil || !changed {
		return err
	}
	return g.store.Save()
}

// RemoveEdges deletes the edges consumer holds on the packages named in
// deps, whichever installed version carries them, and persists the registry.
// It returns the versions that lost an edge.
func (g *Graph) RemoveEdges(
	consumer domain.Consumer,
	deps map[string]string,
	kind domain.EdgeKind,
) ([]domain.PackageRef, error) {
	touched := g.Disconnect(consumer, deps, kind)
	if len(touched) == 0 {
		return nil, nil
	}
	if err := g.store.Save(); err != nil {
		return nil, err
	}
	return touched, nil
}

// Disconnect deletes the edges consumer holds on the packages named in deps
// without persisting, and returns the versions that lost an edge.
func (g *Graph) Disconnect(consumer domain.Consumer, deps map[string]string, kind domain.EdgeKind) []domain.PackageRef {
	reg := g.store.Registry()

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var touched []domain.PackageRef
	for _, name := range names {
		for _, v := range reg.Versions(name) {
			entry := reg.Entry(name, v)
			if entry.Edges(kind).Remove(consumer.Name, consumer.Version) {
				touched = append(touched, domain.PackageRef{Name: name, Version: v})
			}
		}
	}
	return touched
}

// Remove runs the removal protocol for name. An empty ver removes every
// installed version; a ver that is not installed verbatim is treated as a
// range. The report lists one outcome per version visited, cascade steps
// included.
func (g *Graph) Remove(
	ctx context.Context,
	name, ver string,
	opts domain.RemoveOptions,
) (*domain.RemovalReport, error) {
	report := &domain.RemovalReport{}
	visited := make(map[domain.PackageRef]bool)

	for _, v := range g.targets(name, ver) {
		if err := g.removeVersion(ctx, domain.PackageRef{Name: name, Version: v}, opts, 0, report, visited); err != nil {
			return report, err
		}
	}
	if len(report.Outcomes) == 0 {
		report.Outcomes = append(report.Outcomes, domain.RemovalOutcome{
			Name:    name,
			Version: ver,
			Status:  domain.RemovalNotInstalled,
		})
		g.logger.Warn(name + " is not installed")
	}
	return report, nil
}

// targets lists the installed versions a removal request refers to.
func (g *Graph) targets(name, ver string) []string {
	reg := g.store.Registry()
	if ver == "" || ver == version.Any {
		return version.Sort(reg.Versions(name))
	}
	if reg.Entry(name, ver) != nil {
		return []string{ver}
	}
	if v, ok := version.BestSatisfying(ver, reg.Versions(name)); ok {
		return []string{v}
	}
	return nil
}

func (g *Graph) removeVersion(
	ctx context.Context,
	ref domain.PackageRef,
	opts domain.RemoveOptions,
	depth int,
	report *domain.RemovalReport,
	visited map[domain.PackageRef]bool,
) error {
	if visited[ref] {
		return nil
	}
	visited[ref] = true

	if err := ctx.Err(); err != nil {
		return err
	}

	reg := g.store.Registry()
	entry := reg.Entry(ref.Name, ref.Version)
	outcome := domain.RemovalOutcome{Name: ref.Name, Version: ref.Version, Depth: depth}
	if entry == nil {
		outcome.Status = domain.RemovalNotInstalled
		report.Outcomes = append(report.Outcomes, outcome)
		return nil
	}

	if blockers := blockersOf(entry, opts.Owner); len(blockers) > 0 && !opts.Force {
		outcome.Status = domain.RemovalBlocked
		outcome.Blockers = blockers
		report.Outcomes = append(report.Outcomes, outcome)
		g.logger.Warn(ref.Name + "@" + ref.Version + " is still in use by " + describe(blockers))
		return nil
	}

	self := domain.Consumer{Name: entry.Name, Version: entry.Version, Path: entry.Path}
	touched := g.Disconnect(self, entry.Dependencies, domain.EdgeDependents)

	if err := g.removeShims(domain.SharedBinPath(g.store.Root()), entry); err != nil {
		return err
	}
	if err := g.detachOwner(opts.Owner, entry); err != nil {
		return err
	}
	reg.Delete(entry.Name, entry.Version)
	if err := g.store.Save(); err != nil {
		return err
	}
	if err := g.payloads.Remove(entry.Path); err != nil {
		return err
	}

	outcome.Status = domain.RemovalRemoved
	report.Outcomes = append(report.Outcomes, outcome)
	g.logger.Info("removed " + ref.Name + "@" + ref.Version)

	if !opts.Auto {
		return nil
	}

	// Cascade steps never force and never exempt the owner: a dependency the
	// owner also uses directly stays.
	cascade := domain.RemoveOptions{Auto: true}
	for _, dep := range touched {
		if err := g.removeVersion(ctx, dep, cascade, depth+1, report, visited); err != nil {
			return err
		}
	}
	return nil
}

// removeShims drops the executables of entry in binDir that still point
// into its payload.
func (g *Graph) removeShims(binDir string, entry *domain.PackageEntry) error {
	native := g.linker.Capabilities().SymlinkKind == domain.SymlinkNative
	lastVersion := len(g.store.Registry().Versions(entry.Name)) <= 1

	for bin := range entry.Bin {
		if native {
			if _, err := g.linker.Unlink(filepath.Join(binDir, bin), entry.Path); err != nil {
				return err
			}
			continue
		}
		if lastVersion {
			if err := g.linker.RemoveShim(binDir, bin); err != nil {
				return err
			}
		}
	}
	return nil
}

// detachOwner removes the owner's module link and local shims when they
// point into entry.
func (g *Graph) detachOwner(owner *domain.Consumer, entry *domain.PackageEntry) error {
	if owner == nil || !entry.LocalUsers.Has(owner.Name, owner.Version) {
		return nil
	}
	link := filepath.Join(domain.ModulesPath(owner.Path), filepath.FromSlash(entry.Name))
	if _, err := g.linker.Unlink(link, entry.Path); err != nil {
		return err
	}
	return g.removeShims(domain.LocalBinPath(owner.Path), entry)
}

// blockersOf lists the consumers preventing removal of entry. The owner's
// own localusers edge is exempt when it matches by name and version.
func blockersOf(entry *domain.PackageEntry, owner *domain.Consumer) []domain.Blocker {
	var blockers []domain.Blocker
	for _, c := range entry.Dependents.Consumers() {
		blockers = append(blockers, domain.Blocker{
			Kind: domain.EdgeDependents, Name: c.Name, Version: c.Version, Path: c.Path,
		})
	}
	for _, c := range entry.LocalUsers.Consumers() {
		if owner != nil && owner.Name == c.Name && owner.Version == c.Version {
			continue
		}
		blockers = append(blockers, domain.Blocker{
			Kind: domain.EdgeLocalUsers, Name: c.Name, Version: c.Version, Path: c.Path,
		})
	}
	return blockers
}

func describe(blockers []domain.Blocker) string {
	out := ""
	for i, b := range blockers {
		if i > 0 {
			out += ", "
		}
		out += b.Name + "@" + b.Version
	}
	return out
}
