package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyfill/internal/adapters/catalog"   //nolint:depguard // Wired in app layer
	"go.trai.ch/polyfill/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/polyfill/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/polyfill/internal/adapters/lrucache"  //nolint:depguard // Wired in app layer
	"go.trai.ch/polyfill/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/polyfill/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/polyfill/internal/core/ports"
	"go.trai.ch/polyfill/internal/engine/useragent"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the wired application with the adapters the entry
// points need directly.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings *config.Settings
	Metrics  *metrics.Prometheus
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			lrucache.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			metrics.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[*config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*catalog.Registry](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.IdentityCache](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	policy, err := settings.UnknownPolicy()
	if err != nil {
		return nil, err
	}

	return New(
		registry,
		useragent.NewNormalizer(cache),
		log,
		tracer,
		WithCatalogLoader(registry),
		WithUnknownPolicy(policy),
		WithParallelism(settings.Concurrency),
	), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      a,
		Logger:   log,
		Settings: settings,
		Metrics:  m,
	}, nil
}
