package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

var ErrHostNotFound = errors.New("host not found")

// Source is the query layer the resolver reads host snapshots from.
type Source interface {
	Hosts(ctx context.Context) ([]string, error)
	Snapshot(ctx context.Context, hostname string) (*topology.Snapshot, error)
	Close() error
}

// Store is a Source that snapshots can be imported into.
type Store interface {
	Source
	Put(ctx context.Context, snap *topology.Snapshot) error
	Delete(ctx context.Context, hostname string) error
}

type Factory func(path string) (Source, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Factory)
)

func Register(driver string, factory Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[driver] = factory
}

func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Open(cfg config.InventoryConfig) (Source, error) {
	driversMu.RLock()
	factory, ok := drivers[cfg.Driver]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("inventory driver %q not registered", cfg.Driver)
	}

	src, err := factory(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s inventory at %s: %w", cfg.Driver, cfg.Path, err)
	}
	return src, nil
}
