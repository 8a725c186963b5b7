package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/config"
	"go.trai.ch/bridge/internal/adapters/npm"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
)

// NodeID is the unique identifier for the registry store Graft node.
const NodeID graft.ID = "adapter.registry_store"

func init() {
	graft.Register(graft.Node[ports.RegistryStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, npm.NodeID},
		Run: func(ctx context.Context) (ports.RegistryStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.PackageFetcher](ctx)
			if err != nil {
				return nil, err
			}

			store := NewStore(cfg.Root, fetcher)
			if err := store.Load(); err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
