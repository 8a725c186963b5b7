package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/bridge/internal/core/ports"
)

// NodeID is the unique identifier for the dependency graph Graft node.
const NodeID graft.ID = "engine.graph"

func init() {
	graft.Register(graft.Node[*Graph]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			fs.PayloadNodeID,
			fs.LinkerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Graph, error) {
			store, err := graft.Dep[ports.RegistryStore](ctx)
			if err != nil {
				return nil, err
			}

			payloads, err := graft.Dep[ports.PayloadStore](ctx)
			if err != nil {
				return nil, err
			}

			linker, err := graft.Dep[ports.Linker](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, payloads, linker, log), nil
		},
	})
}
