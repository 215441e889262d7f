package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyfill/internal/adapters/config"
)

// NodeID is the unique identifier for the catalog registry Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(settings.Concurrency), nil
		},
	})
}
