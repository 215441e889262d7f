// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/polyfill/internal/adapters/catalog"
	_ "go.trai.ch/polyfill/internal/adapters/config"
	_ "go.trai.ch/polyfill/internal/adapters/logger"
	_ "go.trai.ch/polyfill/internal/adapters/lrucache"
	_ "go.trai.ch/polyfill/internal/adapters/metrics"
	_ "go.trai.ch/polyfill/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/polyfill/internal/app"
)
