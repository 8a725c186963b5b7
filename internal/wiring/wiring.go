// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bridge/internal/adapters/config"
	_ "go.trai.ch/bridge/internal/adapters/fs"
	_ "go.trai.ch/bridge/internal/adapters/jsruntime"
	_ "go.trai.ch/bridge/internal/adapters/logger"
	_ "go.trai.ch/bridge/internal/adapters/manifest"
	_ "go.trai.ch/bridge/internal/adapters/nodeload"
	_ "go.trai.ch/bridge/internal/adapters/npm"
	_ "go.trai.ch/bridge/internal/adapters/registry"
	// Register app and engine nodes.
	_ "go.trai.ch/bridge/internal/app"
	_ "go.trai.ch/bridge/internal/engine/graph"
	_ "go.trai.ch/bridge/internal/engine/installer"
	_ "go.trai.ch/bridge/internal/engine/resolver"
)
