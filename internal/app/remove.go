package app

import (
	"context"
	"strings"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// RemoveAll is the request that removes every registered package.
const RemoveAll = "all"

// RemoveOptions configuration for the Remove method.
type RemoveOptions struct {
	Auto    bool
	Force   bool
	Save    bool
	SaveDev bool
}

// Remove runs the removal protocol for "name", "name@version" or "all",
// with the nearest manifest as owner. Blocked versions are part of the
// printed report, not an error.
func (a *App) Remove(ctx context.Context, req string, opts RemoveOptions) (*domain.RemovalReport, error) {
	req = strings.TrimSpace(req)
	if req == "" {
		return nil, zerr.With(domain.ErrInvalidArgument, "argument", "package")
	}

	owner, err := a.owner()
	if err != nil {
		return nil, err
	}

	var reqs []request
	if req == RemoveAll {
		for _, name := range a.store.Registry().Names() {
			reqs = append(reqs, request{name: name})
		}
	} else {
		name, ver := domain.SplitRequest(req)
		reqs = append(reqs, request{name: name, rng: ver})
	}

	ropts := domain.RemoveOptions{Auto: opts.Auto, Force: opts.Force, Owner: consumerOf(owner)}
	report := &domain.RemovalReport{}
	for _, r := range reqs {
		part, err := a.graph.Remove(ctx, r.name, r.rng, ropts)
		if part != nil {
			report.Outcomes = append(report.Outcomes, part.Outcomes...)
		}
		if err != nil {
			a.renderRemoval(report)
			return report, err
		}

		if owner != nil && (opts.Save || opts.SaveDev) && part.Removed() {
			if err := a.manifests.DropDependency(owner.Dir, r.name); err != nil {
				return report, err
			}
		}
	}

	a.renderRemoval(report)
	return report, nil
}
