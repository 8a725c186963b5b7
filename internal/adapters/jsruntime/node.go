package jsruntime

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/core/ports"
	"go.trai.ch/bridge/internal/engine/resolver" //nolint:depguard // The runtime's require is the resolver
)

// NodeID is the unique identifier for the script runner Graft node.
const NodeID graft.ID = "adapter.script_runner"

func init() {
	graft.Register(graft.Node[ports.ScriptRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{resolver.NodeID},
		Run: func(ctx context.Context) (ports.ScriptRunner, error) {
			res, err := graft.Dep[ports.ModuleResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(res, os.Stdout, os.Stderr), nil
		},
	})
}
