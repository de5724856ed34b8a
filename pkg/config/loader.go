package config

import (
	"fmt"
	"os"
	"time"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/pkg/logger"
)

const (
	DefaultAPIListenAddress      = ":8080"
	DefaultExporterListenAddress = ":9090"
	DefaultMaxRequestSize        = 1 * datasize.MB
	DefaultInventoryPath         = "/etc/hostnet/inventory"
	DefaultCacheTTL              = 5 * time.Minute
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logger.LogLevelInfo
	}
	if c.Inventory.Driver == "" {
		c.Inventory.Driver = InventoryDriverFile
	}
	if c.Inventory.Path == "" {
		c.Inventory.Path = DefaultInventoryPath
	}
	if c.API.ListenAddress == "" {
		c.API.ListenAddress = DefaultAPIListenAddress
	}
	if c.API.MaxRequestSize == 0 {
		c.API.MaxRequestSize = DefaultMaxRequestSize
	}
	if c.API.Cache.TTL == 0 {
		c.API.Cache.TTL = DefaultCacheTTL
	}
	if c.Exporter.ListenAddress == "" {
		c.Exporter.ListenAddress = DefaultExporterListenAddress
	}
}

func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format '%s'", c.Logging.Format)
	}

	for name, level := range c.Logging.Components {
		if !validLevel(level) {
			return fmt.Errorf("logging.components.%s: unknown level '%s'", name, level)
		}
	}
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level: unknown level '%s'", c.Logging.Level)
	}

	switch c.Inventory.Driver {
	case InventoryDriverFile, InventoryDriverSQLite:
	default:
		return fmt.Errorf("inventory.driver: unknown driver '%s'", c.Inventory.Driver)
	}

	if c.API.MaxRequestSize < datasize.KB {
		return fmt.Errorf("api.max_request_size: %s is below 1KB", c.API.MaxRequestSize.HumanReadable())
	}
	if c.API.Cache.TTL < 0 {
		return fmt.Errorf("api.cache.ttl: %s is negative", c.API.Cache.TTL)
	}

	return nil
}

func validLevel(level logger.LogLevel) bool {
	switch level {
	case logger.LogLevelDebug, logger.LogLevelInfo, logger.LogLevelWarn, logger.LogLevelError:
		return true
	}
	return false
}
