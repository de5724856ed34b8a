package hieradata

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/pkg/netconfig"
)

const (
	NetworkConfigResource   = "platform::interfaces::network_config"
	RouteConfigResource     = "platform::interfaces::route_config"
	AddressConfigResource   = "platform::addresses::address_config"
	Mlx4CoreOptionsResource = "platform::networking::mlx4_core_options"
	InfraClientIDResource   = "platform::dhclient::params::infra_client_id"
)

// Config is the resource map generated for one host.
type Config struct {
	NetworkConfig   map[string]*netconfig.NetworkConfig `json:"platform::interfaces::network_config" yaml:"platform::interfaces::network_config"`
	RouteConfig     map[string]*netconfig.RouteConfig   `json:"platform::interfaces::route_config" yaml:"platform::interfaces::route_config"`
	AddressConfig   map[string]*netconfig.AddressConfig `json:"platform::addresses::address_config" yaml:"platform::addresses::address_config"`
	Mlx4CoreOptions string                              `json:"platform::networking::mlx4_core_options,omitempty" yaml:"platform::networking::mlx4_core_options,omitempty"`
	InfraClientID   string                              `json:"platform::dhclient::params::infra_client_id,omitempty" yaml:"platform::dhclient::params::infra_client_id,omitempty"`
}

func New() *Config {
	return &Config{
		NetworkConfig: make(map[string]*netconfig.NetworkConfig),
		RouteConfig:   make(map[string]*netconfig.RouteConfig),
		AddressConfig: make(map[string]*netconfig.AddressConfig),
	}
}

// AddInterface keys the resource by its interface name. A later resource for
// the same name replaces the earlier one.
func (c *Config) AddInterface(cfg *netconfig.NetworkConfig) {
	c.NetworkConfig[cfg.Ifname] = cfg
}

func (c *Config) AddRoute(rc *netconfig.RouteConfig) {
	c.RouteConfig[rc.Name] = rc
}

func (c *Config) AddAddress(networkType string, ac *netconfig.AddressConfig) {
	c.AddressConfig[networkType] = ac
}

// Counts returns the number of resources per family.
func (c *Config) Counts() map[string]int {
	counts := map[string]int{
		NetworkConfigResource: len(c.NetworkConfig),
		RouteConfigResource:   len(c.RouteConfig),
		AddressConfigResource: len(c.AddressConfig),
	}
	if c.Mlx4CoreOptions != "" {
		counts[Mlx4CoreOptionsResource] = 1
	}
	if c.InfraClientID != "" {
		counts[InfraClientIDResource] = 1
	}
	return counts
}

func Render(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode hieradata: %w", err)
	}
	return enc.Close()
}

func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode hieradata: %w", err)
	}
	for name, nc := range cfg.NetworkConfig {
		nc.Ifname = name
	}
	return cfg, nil
}
