package nodeload

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/core/ports"
)

// NodeID is the unique identifier for the host loader Graft node.
const NodeID graft.ID = "adapter.host_loader"

func init() {
	graft.Register(graft.Node[ports.HostLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HostLoader, error) {
			return NewLoader(), nil
		},
	})
}
