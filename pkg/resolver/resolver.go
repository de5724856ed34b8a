package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/veesix-networks/hostnet/pkg/classify"
	"github.com/veesix-networks/hostnet/pkg/dhcp"
	"github.com/veesix-networks/hostnet/pkg/hieradata"
	"github.com/veesix-networks/hostnet/pkg/ifmgr"
	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/netconfig"
)

// Resolver turns host snapshots into resource maps. It holds no per-host
// state and is safe for concurrent use.
type Resolver struct {
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Resolver)

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{logger: logger.Get(logger.Resolver)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, snap *topology.Snapshot) (*hieradata.Config, error) {
	if snap == nil {
		return nil, errors.New("resolve: nil snapshot")
	}

	start := time.Now()
	cfg, err := r.resolve(ctx, snap)
	r.metrics.observe(snap.Host.Hostname, cfg, err, time.Since(start))
	return cfg, err
}

func (r *Resolver) resolve(ctx context.Context, snap *topology.Snapshot) (*hieradata.Config, error) {
	log := logger.WithHost(r.logger, logger.HostAttrs{
		Hostname:    snap.Host.Hostname,
		Personality: snap.Host.Personality,
		SystemUUID:  snap.Host.SystemUUID,
		RequestID:   RequestID(ctx),
	})

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot for %s: %w", snap.Host.Hostname, err)
	}

	idx, err := ifmgr.Build(snap, ifmgr.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", snap.Host.Hostname, err)
	}
	c := classify.New(idx)
	cfg := hieradata.New()

	// An all-in-one simplex system runs mgmt over loopback and configures lo
	// itself, unless it is a subcloud with a dedicated mgmt port.
	if idx.Platform.SystemMode != topology.SystemModeSimplex ||
		idx.Platform.DistributedCloudRole == topology.DistributedCloudSubcloud {
		cfg.AddInterface(netconfig.Loopback())
	}

	for _, iface := range idx.Ordered() {
		if !c.NeedsConfig(iface) {
			log.Debug("Skipping interface", "interface", iface.Name)
			continue
		}

		res, err := netconfig.Generate(c, iface)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", iface.Name, err)
		}
		for _, nc := range res.Interfaces {
			cfg.AddInterface(nc)
		}
		for _, rc := range res.Routes {
			cfg.AddRoute(rc)
		}
		log.Debug("Generated interface", "interface", iface.Name, "ifname", res.Interfaces[0].Ifname)
	}

	for networkType, ac := range netconfig.FloatingAddresses(c) {
		cfg.AddAddress(networkType, ac)
	}

	if c.IsWorker() {
		cfg.Mlx4CoreOptions = netconfig.Mlx4CoreOptions(c)
	}

	if !c.IsController() {
		if iface, ok := idx.FindByNetworkType(topology.NetworkTypeInfra); ok {
			cid, err := infraClientID(idx.Host.Hostname, interfaceMAC(idx, iface))
			if err != nil {
				log.Warn("Omitting infra DHCP client id", "interface", iface.Name, "error", err)
			} else {
				cfg.InfraClientID = cid
			}
		}
	}

	log.Info("Resolved host network config",
		"interfaces", len(cfg.NetworkConfig),
		"routes", len(cfg.RouteConfig),
		"addresses", len(cfg.AddressConfig))

	return cfg, nil
}

// interfaceMAC prefers the interface's own MAC and falls back to the port
// backing an ethernet interface.
func interfaceMAC(idx *ifmgr.Index, iface *topology.Interface) string {
	if iface.MAC != "" {
		return iface.MAC
	}
	if port, ok := idx.Port(iface); ok {
		return port.MAC
	}
	return ""
}

func infraClientID(hostname, mac string) (string, error) {
	cid, err := dhcp.ClientID(hostname, topology.NetworkTypeInfra, mac)
	if err != nil {
		return "", err
	}
	if _, err := dhcp.ClientIDOption(cid); err != nil {
		return "", err
	}
	return cid, nil
}
