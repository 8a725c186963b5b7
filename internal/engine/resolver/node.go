package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/manifest" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/nodeload" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.ModuleResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			registry.NodeID,
			manifest.NodeID,
			nodeload.NodeID,
		},
		Run: func(ctx context.Context) (ports.ModuleResolver, error) {
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

			host, err := graft.Dep[ports.HostLoader](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, manifests, host, cfg.Home), nil
		},
	})
}
