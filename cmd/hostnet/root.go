package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	_ "github.com/veesix-networks/hostnet/pkg/inventory/file"
	_ "github.com/veesix-networks/hostnet/pkg/inventory/sqlite"
	"github.com/veesix-networks/hostnet/pkg/logger"
)

var (
	flagConfig          string
	flagInventoryDriver string
	flagInventoryPath   string
	flagLogLevel        string
	flagOutput          string
)

var rootCmd = &cobra.Command{
	Use:   "hostnet",
	Short: "Host network topology resolver",
	Long: `hostnet resolves a host's ports, interfaces, addresses and routes into the
network_config, route_config and address_config resources consumed by the
configuration management backend.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&flagInventoryDriver, "inventory-driver", "", "Inventory driver: file, sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagInventoryPath, "inventory", "", "Inventory path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "yaml", "Output format: yaml, json")
}

// Execute runs the root command.
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("hostnet %s\n", version))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config when given and applies the command line
// overrides on top.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flagInventoryDriver != "" {
		cfg.Inventory.Driver = flagInventoryDriver
	}
	if flagInventoryPath != "" {
		cfg.Inventory.Path = flagInventoryPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = logger.LogLevel(flagLogLevel)
	}

	logger.Configure(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Components)
	return cfg, nil
}

func openInventory() (inventory.Source, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return inventory.Open(cfg.Inventory)
}
