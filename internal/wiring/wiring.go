// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/define/internal/adapters/blob"
	_ "go.trai.ch/define/internal/adapters/config"
	_ "go.trai.ch/define/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/define/internal/app"
)
