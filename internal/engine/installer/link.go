package installer

import (
	"context"
	"path/filepath"
	"sort"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/zerr"
)

// Link points the module directory of m at the installed version of every
// declared dependency and exposes their executables in its local bin
// directory. Dependencies without an installed satisfying version are
// reported and skipped.
func (i *Installer) Link(ctx context.Context, m *domain.Manifest, opts domain.LinkOptions) []domain.LinkStatus {
	deps := m.Declared(!opts.Transitive)
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make([]domain.LinkStatus, 0, len(names))
	for _, name := range names {
		st := domain.LinkStatus{Name: name, Range: deps[name]}

		res, err := i.store.Find(ctx, name, version.Normalize(st.Range), domain.FindOptions{})
		switch {
		case err != nil:
			st.Err = err
		case res.Entry == nil:
			st.Err = zerr.With(zerr.With(domain.ErrPackageNotInstalled, "package", name), "range", st.Range)
		default:
			st.Version = res.Entry.Version
			st.Target = res.Entry.Path
			st.Err = i.linkEntry(m.Dir, res.Entry)
		}
		statuses = append(statuses, st)
	}
	return statuses
}

func (i *Installer) linkEntry(dir string, entry *domain.PackageEntry) error {
	link := filepath.Join(domain.ModulesPath(dir), filepath.FromSlash(entry.Name))
	if err := i.linker.Symlink(entry.Path, link); err != nil {
		return err
	}

	binDir := domain.LocalBinPath(dir)
	for bin, rel := range entry.Bin {
		if err := i.linker.Shim(binDir, bin, filepath.Join(entry.Path, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}
	return nil
}

// LinkProject links the dependencies of a project manifest, dev ones
// included, and records the project as a local user of each linked version.
func (i *Installer) LinkProject(ctx context.Context, m *domain.Manifest) ([]domain.LinkStatus, error) {
	statuses := i.Link(ctx, m, domain.LinkOptions{})

	reg := i.store.Registry()
	for _, st := range statuses {
		if st.Err != nil {
			continue
		}
		ref := domain.PackageRef{Name: st.Name, Version: st.Version}
		if _, err := i.graph.Connect(ref, m.Consumer(), domain.EdgeLocalUsers); err != nil {
			return statuses, err
		}
		reg.Entry(st.Name, st.Version).LastUsed = i.now()
	}

	if err := i.store.Save(); err != nil {
		return statuses, err
	}
	return statuses, nil
}

// UnlinkProject removes the links and shims a project holds into the
// registry and drops its local user edges. Links pointing elsewhere are
// left alone.
func (i *Installer) UnlinkProject(_ context.Context, m *domain.Manifest) ([]string, error) {
	root := i.store.Root()
	reg := i.store.Registry()
	deps := m.Declared(true)

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	var unlinked []string
	for _, name := range names {
		removed, err := i.linker.Unlink(filepath.Join(domain.ModulesPath(m.Dir), filepath.FromSlash(name)), root)
		if err != nil {
			return unlinked, err
		}
		if removed {
			unlinked = append(unlinked, name)
		}

		for _, v := range reg.Versions(name) {
			for bin := range reg.Entry(name, v).Bin {
				if err := i.removeShim(domain.LocalBinPath(m.Dir), bin, root); err != nil {
					return unlinked, err
				}
			}
		}
	}

	if _, err := i.graph.RemoveEdges(m.Consumer(), deps, domain.EdgeLocalUsers); err != nil {
		return unlinked, err
	}
	return unlinked, nil
}

// LinkBin publishes the executables of the installed name@rng in binDir.
func (i *Installer) LinkBin(ctx context.Context, name, rng, binDir string) ([]string, error) {
	entry, err := i.installed(ctx, name, rng)
	if err != nil {
		return nil, err
	}

	bins := sortedBins(entry.Bin)
	for _, bin := range bins {
		target := filepath.Join(entry.Path, filepath.FromSlash(entry.Bin[bin]))
		if err := i.linker.Shim(binDir, bin, target); err != nil {
			return nil, err
		}
	}
	return bins, nil
}

// UnlinkBin removes the executables of the installed name@rng from binDir.
func (i *Installer) UnlinkBin(ctx context.Context, name, rng, binDir string) ([]string, error) {
	entry, err := i.installed(ctx, name, rng)
	if err != nil {
		return nil, err
	}

	bins := sortedBins(entry.Bin)
	for _, bin := range bins {
		if err := i.removeShim(binDir, bin, entry.Path); err != nil {
			return nil, err
		}
	}
	return bins, nil
}

func (i *Installer) installed(ctx context.Context, name, rng string) (*domain.PackageEntry, error) {
	res, err := i.store.Find(ctx, name, version.Normalize(rng), domain.FindOptions{})
	if err != nil {
		return nil, err
	}
	if res.Entry == nil {
		return nil, zerr.With(zerr.With(domain.ErrPackageNotInstalled, "package", name), "range", rng)
	}
	return res.Entry, nil
}

// removeShim deletes a shim only when it belongs under root. Dispatch
// scripts carry no target to check and are removed by name.
func (i *Installer) removeShim(binDir, bin, root string) error {
	if i.linker.Capabilities().SymlinkKind == domain.SymlinkNative {
		_, err := i.linker.Unlink(filepath.Join(binDir, bin), root)
		return err
	}
	return i.linker.RemoveShim(binDir, bin)
}

func sortedBins(bins domain.BinMap) []string {
	out := make([]string, 0, len(bins))
	for bin := range bins {
		out = append(out, bin)
	}
	sort.Strings(out)
	return out
}
