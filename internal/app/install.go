package app

import (
	"context"
	"errors"
	"sort"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/version"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// checkConcurrency bounds the remote queries of CheckUpdates.
const checkConcurrency = 8

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	Force   bool
	Save    bool
	SaveDev bool
}

// request is a package asked for on the command line or by a manifest.
type request struct {
	name string
	rng  string
}

// Install installs each request ("name" or "name@range"). Without requests
// every dependency of the nearest manifest is installed. Inside a project
// the installed packages are linked into it and, with Save or SaveDev,
// recorded in its manifest.
func (a *App) Install(ctx context.Context, requests []string, opts InstallOptions) error {
	owner, err := a.owner()
	if err != nil {
		return err
	}

	var reqs []request
	explicit := len(requests) > 0
	if explicit {
		for _, r := range requests {
			name, rng := domain.SplitRequest(r)
			reqs = append(reqs, request{name: name, rng: rng})
		}
	} else {
		if owner, err = a.project(); err != nil {
			return err
		}
		reqs = declared(owner)
	}

	var errs error
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return errors.Join(errs, err)
		}

		entry, err := a.install(ctx, owner, req, opts.Force)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if owner == nil || !explicit || (!opts.Save && !opts.SaveDev) {
			continue
		}
		if err := a.manifests.SaveDependency(owner.Dir, entry.Name, version.Caret(entry.Version), opts.SaveDev); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// Update force-reinstalls the declared range of each named dependency of
// the nearest manifest, or of all of them.
func (a *App) Update(ctx context.Context, names []string) error {
	owner, err := a.project()
	if err != nil {
		return err
	}

	reqs := declared(owner)
	if len(names) > 0 {
		reqs = make([]request, 0, len(names))
		for _, name := range names {
			rng, ok := owner.Range(name)
			if !ok {
				return zerr.With(zerr.With(domain.ErrInvalidArgument, "package", name), "manifest", owner.Dir)
			}
			reqs = append(reqs, request{name: name, rng: rng})
		}
	}

	var errs error
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return errors.Join(errs, err)
		}
		if _, err := a.install(ctx, owner, req, true); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (a *App) install(ctx context.Context, owner *domain.Manifest, req request, force bool) (*domain.PackageEntry, error) {
	res, err := a.installer.Install(ctx, req.name, req.rng, domain.InstallOptions{
		Owner: consumerOf(owner),
		Force: force,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("installed " + ref(res.Entry.Name, res.Entry.Version))
	if owner != nil {
		a.linkInto(ctx, owner, res.Entry)
	}
	return res.Entry, nil
}

// linkInto links exactly entry into the project of owner.
func (a *App) linkInto(ctx context.Context, owner *domain.Manifest, entry *domain.PackageEntry) {
	only := &domain.Manifest{
		Name:         owner.Name,
		Version:      owner.Version,
		Dir:          owner.Dir,
		Dependencies: map[string]string{entry.Name: entry.Version},
	}
	for _, st := range a.installer.Link(ctx, only, domain.LinkOptions{}) {
		if st.Err != nil {
			a.logger.Error(st.Err)
		}
	}
}

// CheckOptions configuration for the CheckUpdates method.
type CheckOptions struct {
	Install bool
}

// CheckUpdates compares the newest installed version of every registered
// package with the newest published one. Packages whose query fails are
// reported and skipped.
func (a *App) CheckUpdates(ctx context.Context, opts CheckOptions) ([]domain.UpdateCandidate, error) {
	reg := a.store.Registry()
	names := reg.Names()

	latest := make([]string, len(names))
	failed := make([]error, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for i, name := range names {
		g.Go(func() error {
			res, err := a.store.Find(gctx, name, version.Any, domain.FindOptions{CheckRemote: true})
			if err != nil {
				failed[i] = err
				return nil
			}
			latest[i] = res.Latest
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []domain.UpdateCandidate
	for i, name := range names {
		if failed[i] != nil {
			a.logger.Error(failed[i])
			continue
		}
		installed, ok := version.Latest(reg.Versions(name))
		if !ok || !version.Newer(latest[i], installed) {
			continue
		}
		candidates = append(candidates, domain.UpdateCandidate{
			Name:      name,
			Range:     version.Any,
			Installed: installed,
			Latest:    latest[i],
		})
	}

	a.renderUpdates(candidates)
	if !opts.Install {
		return candidates, nil
	}

	var errs error
	for _, c := range candidates {
		if _, err := a.installer.Install(ctx, c.Name, c.Latest, domain.InstallOptions{}); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info("installed " + ref(c.Name, c.Latest))
	}
	return candidates, errs
}

// declared lists the dependencies of m, dev ones included, by name.
func declared(m *domain.Manifest) []request {
	deps := m.Declared(true)
	out := make([]request, 0, len(deps))
	for name, rng := range deps {
		out = append(out, request{name: name, rng: rng})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
