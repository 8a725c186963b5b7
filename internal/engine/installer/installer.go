// Package installer fetches packages through the external client, absorbs
// them into the registry and links them into their consumers.
package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/bridge/internal/engine/graph"
	"go.trai.ch/zerr"
)

// Installer implements install, link and unlink against the shared registry.
type Installer struct {
	store     ports.RegistryStore
	fetcher   ports.PackageFetcher
	payloads  ports.PayloadStore
	manifests ports.ManifestStore
	linker    ports.Linker
	graph     *graph.Graph
	logger    ports.Logger
	now       func() time.Time
}

// New creates an Installer with the given dependencies.
func New(
	store ports.RegistryStore,
	fetcher ports.PackageFetcher,
	payloads ports.PayloadStore,
	manifests ports.ManifestStore,
	linker ports.Linker,
	g *graph.Graph,
	logger ports.Logger,
) *Installer {
	return &Installer{
		store:     store,
		fetcher:   fetcher,
		payloads:  payloads,
		manifests: manifests,
		linker:    linker,
		graph:     g,
		logger:    logger,
		now:       time.Now,
	}
}

// absorbed pairs a discovered payload with the entry it became.
type absorbed struct {
	payload domain.Payload
	entry   *domain.PackageEntry
}

// Install fetches name@rng into a scratch area and absorbs every package the
// client produced. A package already registered at the same version is
// reused unless opts.Force is set. A failing package is rolled back on its
// own; the install fails only when the requested package itself could not
// be absorbed.
func (i *Installer) Install(
	ctx context.Context,
	name, rng string,
	opts domain.InstallOptions,
) (*domain.InstallResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, zerr.With(domain.ErrInvalidArgument, "argument", "name")
	}
	rng = version.Normalize(rng)

	scratch, err := i.newScratch()
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(scratch) //nolint:errcheck // Best effort cleanup of the scratch area

	i.logger.Info("fetching " + name + "@" + rng)
	if err := i.fetcher.Install(ctx, scratch, name, rng); err != nil {
		return nil, err
	}

	payloads, err := i.payloads.Discover(scratch)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrNothingFetched, "package", name), "range", rng)
	}

	result := &domain.InstallResult{}
	var done []absorbed
	for _, p := range payloads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, status := i.absorb(p, opts.Force)
		result.Items = append(result.Items, status)
		if status.Err != nil {
			i.logger.Warn("could not absorb " + status.Name + "@" + status.Version)
			continue
		}
		done = append(done, absorbed{payload: p, entry: entry})
		if p.Parent == "" && entry.Name == name {
			result.Entry = entry
		}
	}

	i.connect(done)

	if result.Entry != nil && opts.Owner != nil {
		ref := domain.PackageRef{Name: result.Entry.Name, Version: result.Entry.Version}
		if _, err := i.graph.Connect(ref, *opts.Owner, domain.EdgeLocalUsers); err != nil {
			return result, err
		}
		i.store.Registry().RecordRequest(name, rng, domain.InstallRequest{
			Name:        opts.Owner.Name,
			Version:     opts.Owner.Version,
			Path:        opts.Owner.Path,
			RequestedAt: i.now(),
		})
	}

	if err := i.store.Save(); err != nil {
		return result, err
	}

	i.expose(ctx, done)

	if result.Entry == nil {
		return result, zerr.With(zerr.With(domain.ErrInstallIncomplete, "package", name), "range", rng)
	}
	return result, nil
}

func (i *Installer) newScratch() (string, error) {
	base := domain.ScratchPath(i.store.Root())
	if err := os.MkdirAll(base, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()), "path", base)
	}
	dir, err := os.MkdirTemp(base, "install-*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()), "path", base)
	}
	return dir, nil
}

// absorb moves one payload into the registry. Nothing is registered for a
// payload whose copy fails.
func (i *Installer) absorb(p domain.Payload, force bool) (*domain.PackageEntry, domain.ItemStatus) {
	m, err := i.manifests.Read(p.Dir)
	if err != nil {
		return nil, domain.ItemStatus{Name: payloadName(p.Dir), Path: p.Dir, Err: err}
	}
	if m.Name == "" {
		m.Name = payloadName(p.Dir)
		m.Bin.Normalize(m.Name)
	}
	if m.Version == "" {
		m.Version = domain.DefaultVersion
	}

	status := domain.ItemStatus{Name: m.Name, Version: m.Version}
	reg := i.store.Registry()
	entry := reg.Entry(m.Name, m.Version)

	if entry != nil && !force {
		entry.LastUsed = i.now()
		status.Path = entry.Path
		status.Reused = true
		return entry, status
	}

	dst := domain.PayloadPath(i.store.Root(), m.Name, m.Version)
	if err := i.payloads.Absorb(p.Dir, dst); err != nil {
		status.Err = err
		return nil, status
	}

	if entry == nil {
		entry = &domain.PackageEntry{Name: m.Name, Version: m.Version}
	} else {
		// Edges of the previous dependency set go; connect adds the new ones.
		self := domain.Consumer{Name: entry.Name, Version: entry.Version, Path: entry.Path}
		i.graph.Disconnect(self, entry.Dependencies, domain.EdgeDependents)
	}
	entry.Path = dst
	entry.Bin = m.Bin
	entry.Dependencies = copyRanges(m.Dependencies)
	entry.LastUsed = i.now()
	entry.Edges(domain.EdgeDependents)
	entry.Edges(domain.EdgeLocalUsers)
	reg.Put(entry)

	status.Path = dst
	i.logger.Info("absorbed " + m.Name + "@" + m.Version)
	return entry, status
}

// connect records a dependents edge for every declared dependency of the
// absorbed entries. A copy nested under the consumer wins over the best
// registered version.
func (i *Installer) connect(done []absorbed) {
	byDir := make(map[string]*domain.PackageEntry, len(done))
	for _, a := range done {
		byDir[a.payload.Dir] = a.entry
	}

	reg := i.store.Registry()
	for _, a := range done {
		consumer := domain.Consumer{Name: a.entry.Name, Version: a.entry.Version, Path: a.entry.Path}
		for dep, rng := range a.entry.Dependencies {
			var ref domain.PackageRef
			nested := filepath.Join(domain.ModulesPath(a.payload.Dir), filepath.FromSlash(dep))
			if child, ok := byDir[nested]; ok {
				ref = domain.PackageRef{Name: child.Name, Version: child.Version}
			} else if v, ok := version.BestSatisfying(rng, reg.Versions(dep)); ok {
				ref = domain.PackageRef{Name: dep, Version: v}
			} else {
				i.logger.Warn(a.entry.Name + "@" + a.entry.Version + " depends on " + dep + "@" + rng + " which is not installed")
				continue
			}
			if _, err := i.graph.Connect(ref, consumer, domain.EdgeDependents); err != nil {
				i.logger.Error(err)
			}
		}
	}
}

// expose links the dependencies of every absorbed entry and publishes its
// executables in the shared bin directory.
func (i *Installer) expose(ctx context.Context, done []absorbed) {
	sharedBin := domain.SharedBinPath(i.store.Root())
	for _, a := range done {
		m := entryManifest(a.entry)
		for _, st := range i.Link(ctx, m, domain.LinkOptions{Transitive: true}) {
			if st.Err != nil {
				i.logger.Error(st.Err)
			}
		}
		for bin, rel := range a.entry.Bin {
			target := filepath.Join(a.entry.Path, filepath.FromSlash(rel))
			if err := i.linker.Shim(sharedBin, bin, target); err != nil {
				i.logger.Error(err)
			}
		}
	}
}

// payloadName derives a package name from its directory, keeping the scope
// of scoped packages.
func payloadName(dir string) string {
	base := filepath.Base(dir)
	scope := filepath.Base(filepath.Dir(dir))
	if strings.HasPrefix(scope, "@") {
		return scope + "/" + base
	}
	return base
}

func entryManifest(entry *domain.PackageEntry) *domain.Manifest {
	return &domain.Manifest{
		Name:         entry.Name,
		Version:      entry.Version,
		Bin:          entry.Bin,
		Dependencies: entry.Dependencies,
		Dir:          entry.Path,
	}
}

func copyRanges(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
