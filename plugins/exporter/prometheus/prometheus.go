package prometheus

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veesix-networks/hostnet/pkg/component"
	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/version"
)

type Component struct {
	*component.Base
	logger        *slog.Logger
	registry      *prometheus.Registry
	subscription  events.Subscription
	addr          string
	server        *http.Server
	mu            sync.RWMutex
	serverRunning bool
}

type Status struct {
	State         string `json:"state"`
	ListenAddress string `json:"listen_address,omitempty"`
	ServerRunning bool   `json:"server_running,omitempty"`
}

func (c *Component) Addr() string {
	return c.addr
}

func (c *Component) GetStatus() *Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := "stopped"
	if c.serverRunning {
		state = "running"
	}

	return &Status{
		State:         state,
		ListenAddress: c.addr,
		ServerRunning: c.serverRunning,
	}
}

func New(deps component.Dependencies) (component.Component, error) {
	if deps.Config == nil || !deps.Config.Exporter.Enabled {
		return nil, nil
	}

	addr := config.DefaultExporterListenAddress
	if deps.Config.Exporter.ListenAddress != "" {
		addr = deps.Config.Exporter.ListenAddress
	}

	registry := deps.Metrics
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	log := logger.Component(logger.Exporter)
	registry.MustRegister(
		collectors.NewGoCollector(),
		newBuildInfoCollector(),
	)
	if deps.Inventory != nil {
		registry.MustRegister(&inventoryCollector{source: deps.Inventory, logger: log})
	}

	c := &Component{
		Base:     component.NewBase(Namespace),
		logger:   log,
		registry: registry,
		addr:     addr,
	}

	if deps.Events != nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostnet_events_total",
			Help: "Events delivered on the internal bus by topic.",
		}, []string{"topic"})
		registry.MustRegister(counter, &busCollector{bus: deps.Events})
		c.subscription = deps.Events.SubscribeAll(func(e events.Event) {
			counter.WithLabelValues(e.Type).Inc()
		})
	}

	return c, nil
}

func (c *Component) Start(ctx context.Context) error {
	c.StartContext(ctx)
	c.logger.Info("Starting Prometheus exporter", "addr", c.addr)

	c.Go(func() {
		c.startServer()
	})

	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.logger.Info("Stopping Prometheus exporter")

	c.mu.RLock()
	server := c.server
	c.mu.RUnlock()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}

	c.mu.Lock()
	c.serverRunning = false
	c.mu.Unlock()

	if c.subscription != nil {
		c.subscription.Unsubscribe()
	}

	c.StopContext()
	return nil
}

func (c *Component) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	return mux
}

// inventoryCollector reports the inventory size at scrape time.
type inventoryCollector struct {
	source inventory.Source
	logger *slog.Logger
}

var inventoryHostsDesc = prometheus.NewDesc(
	"hostnet_inventory_hosts",
	"Hosts available in the inventory.",
	nil, nil,
)

func (ic *inventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- inventoryHostsDesc
}

func (ic *inventoryCollector) Collect(ch chan<- prometheus.Metric) {
	hosts, err := ic.source.Hosts(context.Background())
	if err != nil {
		ic.logger.Error("Failed to collect inventory hosts", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(inventoryHostsDesc, prometheus.GaugeValue, float64(len(hosts)))
}

// busCollector exposes the bus counters, which are kept by the bus itself.
type busCollector struct {
	bus events.Bus
}

var (
	busPublishedDesc = prometheus.NewDesc("hostnet_events_published_total", "Events accepted by the bus.", nil, nil)
	busDroppedDesc   = prometheus.NewDesc("hostnet_events_dropped_total", "Events dropped because the bus queue was full.", nil, nil)
)

func (bc *busCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- busPublishedDesc
	ch <- busDroppedDesc
}

func (bc *busCollector) Collect(ch chan<- prometheus.Metric) {
	stats := bc.bus.Stats()
	ch <- prometheus.MustNewConstMetric(busPublishedDesc, prometheus.CounterValue, float64(stats.Published))
	ch <- prometheus.MustNewConstMetric(busDroppedDesc, prometheus.CounterValue, float64(stats.Dropped))
}

func newBuildInfoCollector() prometheus.Collector {
	info := version.Get()
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "hostnet_build_info",
		Help: "Build information of the running binary.",
		ConstLabels: prometheus.Labels{
			"version":    info.Version,
			"commit":     info.Commit,
			"go_version": info.GoVersion,
		},
	}, func() float64 { return 1 })
}

func (c *Component) startServer() {
	server := &http.Server{
		Addr:    c.addr,
		Handler: c.Handler(),
	}

	c.mu.Lock()
	c.server = server
	c.serverRunning = true
	c.mu.Unlock()

	c.logger.Info("Prometheus HTTP server listening", "addr", c.addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		c.logger.Error("Prometheus HTTP server error", "error", err)
		c.mu.Lock()
		c.serverRunning = false
		c.mu.Unlock()
	}
}
