package netconfig

import (
	"fmt"
	"maps"
)

const (
	EnsurePresent = "present"

	LoopbackIfname = "lo"
)

// NetworkConfig is one interface resource. Ifname is the resource key and is
// not rendered as an attribute.
type NetworkConfig struct {
	Ifname    string            `json:"-" yaml:"-"`
	Ensure    string            `json:"ensure" yaml:"ensure"`
	Family    string            `json:"family" yaml:"family"`
	Method    string            `json:"method" yaml:"method"`
	Hotplug   string            `json:"hotplug" yaml:"hotplug"`
	OnBoot    string            `json:"onboot" yaml:"onboot"`
	MTU       string            `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	Options   map[string]string `json:"options" yaml:"options"`
	IPAddress string            `json:"ipaddress,omitempty" yaml:"ipaddress,omitempty"`
	Netmask   string            `json:"netmask,omitempty" yaml:"netmask,omitempty"`
	Gateway   string            `json:"gateway,omitempty" yaml:"gateway,omitempty"`
}

func (n *NetworkConfig) Clone() *NetworkConfig {
	clone := *n
	clone.Options = maps.Clone(n.Options)
	return &clone
}

type RouteConfig struct {
	Name      string `json:"name" yaml:"name"`
	Ensure    string `json:"ensure" yaml:"ensure"`
	Gateway   string `json:"gateway" yaml:"gateway"`
	Interface string `json:"interface" yaml:"interface"`
	Netmask   string `json:"netmask" yaml:"netmask"`
	Network   string `json:"network" yaml:"network"`
	Options   string `json:"options" yaml:"options"`
}

type AddressConfig struct {
	Ifname  string `json:"ifname" yaml:"ifname"`
	Address string `json:"address" yaml:"address"`
}

// Resources is everything generated for a single interface.
type Resources struct {
	Interfaces []*NetworkConfig
	Routes     []*RouteConfig
}

type MissingAddressError struct {
	Interface   string
	NetworkType string
}

func (e *MissingAddressError) Error() string {
	return fmt.Sprintf("interface %s (%s) has static addressing but no primary address", e.Interface, e.NetworkType)
}

func basic(ifname, method, family string, mtu int) *NetworkConfig {
	cfg := &NetworkConfig{
		Ifname:  ifname,
		Ensure:  EnsurePresent,
		Family:  family,
		Method:  method,
		Hotplug: "false",
		OnBoot:  "true",
		Options: make(map[string]string),
	}
	if mtu > 0 {
		cfg.MTU = fmt.Sprint(mtu)
	}
	return cfg
}
