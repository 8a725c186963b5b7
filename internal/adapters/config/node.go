package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the configuration Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[*domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*domain.Config, error) {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, zerr.Wrap(err, domain.ErrHomeNotFound.Error())
			}

			cfg, err := Load(home)
			if err != nil {
				return nil, err
			}

			if err := EnsureRoot(cfg.Root); err != nil {
				return nil, err
			}
			return cfg, nil
		},
	})
}
