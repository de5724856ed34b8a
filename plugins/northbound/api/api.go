package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/veesix-networks/hostnet/pkg/component"
	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/resolver"
)

type Component struct {
	*component.Base
	logger         *slog.Logger
	inventory      inventory.Source
	store          inventory.Store
	resolver       *resolver.Resolver
	events         events.Bus
	cache          *resolutionCache
	subscription   events.Subscription
	spec           *openapi3.T
	snapshotSchema *openapi3.Schema
	addr           string
	maxRequestSize int64
	server         *http.Server
	mu             sync.RWMutex
	running        bool
}

func NewComponent(deps component.Dependencies) (component.Component, error) {
	if deps.Config == nil || !deps.Config.API.Enabled {
		return nil, nil
	}
	if deps.Inventory == nil || deps.Resolver == nil {
		return nil, errors.New("api requires an inventory and a resolver")
	}

	addr := deps.Config.API.ListenAddress
	if addr == "" {
		addr = config.DefaultAPIListenAddress
	}
	maxSize := deps.Config.API.MaxRequestSize
	if maxSize == 0 {
		maxSize = config.DefaultMaxRequestSize
	}

	c := &Component{
		Base:           component.NewBase(Namespace),
		logger:         logger.Component(logger.Northbound),
		inventory:      deps.Inventory,
		resolver:       deps.Resolver,
		events:         deps.Events,
		spec:           buildOpenAPISpec(),
		snapshotSchema: snapshotSchema().Value,
		addr:           addr,
		maxRequestSize: int64(maxSize.Bytes()),
	}

	if store, ok := deps.Inventory.(inventory.Store); ok {
		if deps.Events != nil {
			store = inventory.WithEvents(store, deps.Events)
		}
		c.store = store
	}

	if deps.Config.API.Cache.Enabled && deps.Cache != nil {
		c.cache = &resolutionCache{backend: deps.Cache, ttl: deps.Config.API.Cache.TTL, logger: c.logger}
		if deps.Events != nil {
			c.subscription = deps.Events.Subscribe(events.TopicInventoryUpdated, c.cache.onInventoryEvent)
		}
	}

	return c, nil
}

func (c *Component) Start(ctx context.Context) error {
	c.StartContext(ctx)
	c.logger.Info("Starting API server", "addr", c.addr)

	c.Go(func() {
		c.startServer()
	})

	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.logger.Info("Stopping API server")

	c.mu.RLock()
	server := c.server
	c.mu.RUnlock()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	if c.subscription != nil {
		c.subscription.Unsubscribe()
	}

	c.StopContext()
	return nil
}

func (c *Component) GetStatus() *Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := "stopped"
	if c.running {
		state = "running"
	}

	return &Status{
		State:         state,
		ListenAddress: c.addr,
		Running:       c.running,
	}
}

func (c *Component) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/hosts", c.handleHosts)
	mux.HandleFunc("PUT /api/hosts/{host}", c.handlePutHost)
	mux.HandleFunc("DELETE /api/hosts/{host}", c.handleDeleteHost)
	mux.HandleFunc("GET /api/hosts/{host}/resolve", c.handleResolveHost)
	mux.HandleFunc("GET /api/hosts/{host}/interfaces", c.handleInterfaces)
	mux.HandleFunc("POST /api/resolve", c.handleResolve)
	mux.HandleFunc("GET /api/openapi.json", c.handleOpenAPI)
	mux.HandleFunc("GET /api/status", c.handleStatus)

	return mux
}

func (c *Component) startServer() {
	server := &http.Server{
		Addr:    c.addr,
		Handler: c.Handler(),
	}

	c.mu.Lock()
	c.server = server
	c.running = true
	c.mu.Unlock()

	c.logger.Info("API server listening", "addr", c.addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		c.logger.Error("API server error", "error", err)
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}
}
