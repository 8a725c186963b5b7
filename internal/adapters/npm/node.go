package npm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/config"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
)

// NodeID is the unique identifier for the package client Graft node.
const NodeID graft.ID = "adapter.package_fetcher"

func init() {
	graft.Register(graft.Node[ports.PackageFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.PackageFetcher, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg.Client), nil
		},
	})
}
