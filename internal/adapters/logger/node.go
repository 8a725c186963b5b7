package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/adapters/config"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			lg := New()
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			if cfg.LogJSON {
				lg.(*Logger).SetJSON(true)
			}
			return lg, nil
		},
	})
}
