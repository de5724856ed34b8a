package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/veesix-networks/hostnet/pkg/cache/memory"
	"github.com/veesix-networks/hostnet/pkg/component"
	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/events/local"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	_ "github.com/veesix-networks/hostnet/pkg/inventory/file"
	_ "github.com/veesix-networks/hostnet/pkg/inventory/sqlite"
	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/resolver"
	"github.com/veesix-networks/hostnet/pkg/version"
	_ "github.com/veesix-networks/hostnet/plugins/all"
)

func main() {
	configPath := flag.String("config", "/etc/hostnet/hostnet.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		os.Stdout.WriteString(version.Full() + "\n")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Configure(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Components)

	mainLog := logger.Component(logger.Main)
	mainLog.Info("Starting hostnetd", "version", version.Version, "inventory", cfg.Inventory.Driver)

	src, err := inventory.Open(cfg.Inventory)
	if err != nil {
		log.Fatalf("Failed to open inventory: %v", err)
	}
	defer src.Close()

	registry := prometheus.NewRegistry()
	res := resolver.New(resolver.WithMetrics(resolver.NewMetrics(registry)))

	bus := local.NewBus()
	defer bus.Close()

	deps := component.Dependencies{
		Config:    cfg,
		Inventory: src,
		Resolver:  res,
		Metrics:   registry,
		Events:    bus,
	}

	if cfg.API.Cache.Enabled {
		resolutions := memory.New()
		defer resolutions.Close()
		deps.Cache = resolutions
		mainLog.Info("Resolution cache enabled", "ttl", cfg.API.Cache.TTL)
	}

	orch := component.NewOrchestrator()

	pluginComponents, err := component.LoadAll(deps)
	if err != nil {
		log.Fatalf("Failed to load plugin components: %v", err)
	}
	if len(pluginComponents) == 0 {
		mainLog.Warn("No components enabled, check the api and exporter sections")
	}

	for _, comp := range pluginComponents {
		mainLog.Info("Loaded plugin component", "name", comp.Name())
		orch.Register(comp)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := orch.Start(ctx); err != nil {
		log.Fatalf("Failed to start components: %v", err)
	}

	mainLog.Info("hostnetd started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	mainLog.Info("Shutting down hostnetd...", "signal", sig.String())

	if err := orch.Stop(ctx); err != nil {
		mainLog.Error("Error stopping components", "error", err)
	}

	mainLog.Info("hostnetd stopped")
}
