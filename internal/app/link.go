package app

import (
	"context"

	"go.trai.ch/bridge/internal/core/domain"
)

// Link links the dependencies of the nearest manifest, dev ones included,
// and records the project as their local user.
func (a *App) Link(ctx context.Context) error {
	owner, err := a.project()
	if err != nil {
		return err
	}

	statuses, err := a.installer.LinkProject(ctx, owner)
	for _, st := range statuses {
		if st.Err != nil {
			a.logger.Warn("skipped " + st.Name + "@" + st.Range + ": " + st.Err.Error())
			continue
		}
		a.logger.Info("linked " + ref(st.Name, st.Version))
	}
	return err
}

// Unlink removes the links the nearest manifest holds into the registry.
func (a *App) Unlink(ctx context.Context) error {
	owner, err := a.project()
	if err != nil {
		return err
	}

	names, err := a.installer.UnlinkProject(ctx, owner)
	for _, name := range names {
		a.logger.Info("unlinked " + name)
	}
	return err
}

// LinkBin publishes the executables of an installed package in the global
// bin directory.
func (a *App) LinkBin(ctx context.Context, req string) error {
	name, rng := domain.SplitRequest(req)
	bins, err := a.installer.LinkBin(ctx, name, rng, a.cfg.GlobalBinDir)
	if err != nil {
		return err
	}
	for _, bin := range bins {
		a.logger.Info("linked " + bin + " into " + a.cfg.GlobalBinDir)
	}
	return nil
}

// UnlinkBin removes the executables of an installed package from the global
// bin directory.
func (a *App) UnlinkBin(ctx context.Context, req string) error {
	name, rng := domain.SplitRequest(req)
	bins, err := a.installer.UnlinkBin(ctx, name, rng, a.cfg.GlobalBinDir)
	if err != nil {
		return err
	}
	for _, bin := range bins {
		a.logger.Info("unlinked " + bin + " from " + a.cfg.GlobalBinDir)
	}
	return nil
}
