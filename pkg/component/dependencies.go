package component

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/veesix-networks/hostnet/pkg/cache"
	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	"github.com/veesix-networks/hostnet/pkg/resolver"
)

type Dependencies struct {
	Config    *config.Config
	Inventory inventory.Source
	Resolver  *resolver.Resolver
	Metrics   *prometheus.Registry
	Events    events.Bus
	Cache     cache.Cache
}
