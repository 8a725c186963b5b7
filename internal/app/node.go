package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bridge/internal/adapters/jsruntime" //nolint:depguard // Wired in app layer
	"go.trai.ch/bridge/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/bridge/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/bridge/internal/adapters/registry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/engine/graph"
	"go.trai.ch/bridge/internal/engine/installer"
	"go.trai.ch/bridge/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			registry.NodeID,
			manifest.NodeID,
			installer.NodeID,
			graph.NodeID,
			resolver.NodeID,
			jsruntime.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RegistryStore](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	inst, err := graft.Dep[*installer.Installer](ctx)
	if err != nil {
		return nil, err
	}

	g, err := graft.Dep[*graph.Graph](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[ports.ModuleResolver](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.ScriptRunner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, store, manifests, inst, g, res, runner, log), nil
}
