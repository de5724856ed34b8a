package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/veesix-networks/hostnet/pkg/cache"
	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/hieradata"
)

const resolveKeyPrefix = "resolve:"

// resolutionCache holds the generated resources of inventory hosts keyed by
// hostname. Posted snapshots are never cached.
type resolutionCache struct {
	backend cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
}

func resolveKey(host string) string {
	return resolveKeyPrefix + host
}

func (rc *resolutionCache) get(ctx context.Context, host string) (*hieradata.Config, bool) {
	data, err := rc.backend.Get(ctx, resolveKey(host))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			rc.logger.Warn("cache read failed", "host", host, "error", err)
		}
		return nil, false
	}

	var cfg hieradata.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		rc.logger.Warn("dropping undecodable cache entry", "host", host, "error", err)
		rc.backend.Delete(ctx, resolveKey(host))
		return nil, false
	}
	for name, nc := range cfg.NetworkConfig {
		nc.Ifname = name
	}
	return &cfg, true
}

func (rc *resolutionCache) put(ctx context.Context, host string, cfg *hieradata.Config) {
	data, err := json.Marshal(cfg)
	if err != nil {
		rc.logger.Warn("cache encode failed", "host", host, "error", err)
		return
	}
	if err := rc.backend.Set(ctx, resolveKey(host), data, rc.ttl); err != nil {
		rc.logger.Warn("cache write failed", "host", host, "error", err)
	}
}

func (rc *resolutionCache) invalidate(ctx context.Context, host string) {
	if err := rc.backend.Delete(ctx, resolveKey(host)); err != nil {
		rc.logger.Warn("cache invalidate failed", "host", host, "error", err)
	}
}

func (rc *resolutionCache) onInventoryEvent(e events.Event) {
	ev, ok := e.Data.(events.InventoryEvent)
	if !ok {
		return
	}
	rc.logger.Debug("invalidating cached resolution", "host", ev.Hostname, "action", ev.Action)
	rc.invalidate(context.Background(), ev.Hostname)
}
