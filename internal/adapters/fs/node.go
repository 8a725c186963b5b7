package fs

import (
	"context"
	"runtime"

	"github.com/grindlemire/graft"
	"go.trai.ch/bridge/internal/core/domain"
	"go.trai.ch/bridge/internal/core/ports"
)

const (
	// PayloadNodeID is the unique identifier for the payload store Graft node.
	PayloadNodeID graft.ID = "adapter.fs.payload"
	// LinkerNodeID is the unique identifier for the linker Graft node.
	LinkerNodeID graft.ID = "adapter.fs.linker"
)

func init() {
	graft.Register(graft.Node[ports.PayloadStore]{
		ID:        PayloadNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PayloadStore, error) {
			return NewPayloadStore(), nil
		},
	})

	graft.Register(graft.Node[ports.Linker]{
		ID:        LinkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Linker, error) {
			return NewLinker(domain.CapabilitiesFor(runtime.GOOS)), nil
		},
	})
}
