package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/manifest" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/npm"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/engine/graph"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			npm.NodeID,
			fs.PayloadNodeID,
			fs.LinkerNodeID,
			manifest.NodeID,
			graph.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			store, err := graft.Dep[ports.RegistryStore](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.PackageFetcher](ctx)
			if err != nil {
				return nil, err
			}

			payloads, err := graft.Dep[ports.PayloadStore](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			linker, err := graft.Dep[ports.Linker](ctx)
			if err != nil {
				return nil, err
			}

			g, err := graft.Dep[*graph.Graph](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, fetcher, payloads, manifests, linker, g, log), nil
		},
	})
}
