package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// mainFile stands in for the requesting file when none is given.
const mainFile = "index.js"

// Resolve answers a module lookup as if from were requiring specifier. An
// empty from means a file in the working directory.
func (a *App) Resolve(_ context.Context, specifier, from string) (domain.Resolution, error) {
	if from == "" {
		dir, err := a.dir()
		if err != nil {
			return domain.Resolution{}, err
		}
		from = filepath.Join(dir, mainFile)
	}
	abs, err := filepath.Abs(from)
	if err != nil {
		return domain.Resolution{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidArgument.Error()), "from", from)
	}

	res, err := a.resolver.Resolve(specifier, abs)
	a.renderResolution(res)
	return res, err
}

// Exec runs file in the embedded script host with bridged module lookups.
func (a *App) Exec(ctx context.Context, file string, args []string) error {
	if !filepath.IsAbs(file) {
		dir, err := a.dir()
		if err != nil {
			return err
		}
		file = filepath.Join(dir, file)
	}
	return a.runner.Run(ctx, file, args)
}
