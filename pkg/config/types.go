package config

import (
	"time"

	"github.com/c2h5oh/datasize"

	"github.com/veesix-networks/hostnet/pkg/logger"
)

const (
	InventoryDriverFile   = "file"
	InventoryDriverSQLite = "sqlite"
)

type Config struct {
	Logging   LoggingConfig   `json:"logging,omitempty" yaml:"logging,omitempty"`
	Inventory InventoryConfig `json:"inventory" yaml:"inventory"`
	API       APIConfig       `json:"api,omitempty" yaml:"api,omitempty"`
	Exporter  ExporterConfig  `json:"exporter,omitempty" yaml:"exporter,omitempty"`
}

type LoggingConfig struct {
	Format     string                     `json:"format,omitempty" yaml:"format,omitempty"`
	Level      logger.LogLevel            `json:"level,omitempty" yaml:"level,omitempty"`
	Components map[string]logger.LogLevel `json:"components,omitempty" yaml:"components,omitempty"`
}

// InventoryConfig selects where host snapshots are read from. Path is a
// directory for the file driver and a database file for sqlite.
type InventoryConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	Path   string `json:"path" yaml:"path"`
}

type APIConfig struct {
	Enabled        bool              `json:"enabled" yaml:"enabled"`
	ListenAddress  string            `json:"listen_address,omitempty" yaml:"listen_address,omitempty"`
	MaxRequestSize datasize.ByteSize `json:"max_request_size,omitempty" yaml:"max_request_size,omitempty"`
	Cache          CacheConfig       `json:"cache,omitempty" yaml:"cache,omitempty"`
}

// CacheConfig controls caching of resolutions for inventory hosts. Entries
// are dropped when the host's snapshot is written through the API.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

type ExporterConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	ListenAddress string `json:"listen_address,omitempty" yaml:"listen_address,omitempty"`
}
