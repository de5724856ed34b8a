package logger

const (
	Main       = "main"
	Resolver   = "resolver"
	Topology   = "topology"
	Inventory  = "inventory"
	Discover   = "discover"
	Northbound = "nb"
	Exporter   = "exporter"
	CLI        = "cli"
	Events     = "events"
	Cache      = "cache"

	ResolverClassify = "resolver.classify"
	InventorySQLite  = "inventory.sqlite"
)
