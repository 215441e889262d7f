package lrucache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyfill/internal/adapters/config"
	"go.trai.ch/polyfill/internal/core/ports"
)

// NodeID is the unique identifier for the identity cache Graft node.
const NodeID graft.ID = "adapter.identity_cache"

func init() {
	graft.Register(graft.Node[ports.IdentityCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.IdentityCache, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.CacheSize)
		},
	})
}
