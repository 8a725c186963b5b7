// Package app implements the application layer for bridge.
package app

import (
	"errors"
	"io"
	"os"

	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/engine/graph"
	"go.trai.ch/bridge/internal/engine/installer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	cfg       *domain.Config
	store     ports.RegistryStore
	manifests ports.ManifestStore
	installer *installer.Installer
	graph     *graph.Graph
	resolver  ports.ModuleResolver
	runner    ports.ScriptRunner
	logger    ports.Logger
	out       io.Writer
	workDir   string
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	store ports.RegistryStore,
	manifests ports.ManifestStore,
	inst *installer.Installer,
	g *graph.Graph,
	resolver ports.ModuleResolver,
	runner ports.ScriptRunner,
	log ports.Logger,
) *App {
	return &App{
		cfg:       cfg,
		store:     store,
		manifests: manifests,
		installer: inst,
		graph:     g,
		resolver:  resolver,
		runner:    runner,
		logger:    log,
		out:       os.Stdout,
	}
}

// WithOutput sets where listings and reports are printed.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkDir sets the directory the nearest manifest is looked up from.
// The process working directory is used when empty.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

func (a *App) dir() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return wd, nil
}

// owner returns the nearest project manifest, or nil outside a project.
func (a *App) owner() (*domain.Manifest, error) {
	dir, err := a.dir()
	if err != nil {
		return nil, err
	}
	m, err := a.manifests.FindNearest(dir, a.cfg.Home)
	if errors.Is(err, domain.ErrManifestNotFound) {
		return nil, nil
	}
	return m, err
}

// project is owner for commands that cannot run outside a project.
func (a *App) project() (*domain.Manifest, error) {
	m, err := a.owner()
	if err != nil {
		return nil, err
	}
	if m == nil {
		dir, _ := a.dir()
		return nil, zerr.With(domain.ErrManifestNotFound, "dir", dir)
	}
	return m, nil
}

func consumerOf(m *domain.Manifest) *domain.Consumer {
	if m == nil {
		return nil
	}
	c := m.Consumer()
	return &c
}

func ref(name, ver string) string {
	return name + "@" + ver
}
