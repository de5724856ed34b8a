package topology

import "slices"

const (
	NetworkTypeNone           = "none"
	NetworkTypePXEBoot        = "pxeboot"
	NetworkTypeMgmt           = "mgmt"
	NetworkTypeInfra          = "infra"
	NetworkTypeOAM            = "oam"
	NetworkTypeData           = "data"
	NetworkTypeDataVRS        = "data-vrs"
	NetworkTypeBMC            = "bmc"
	NetworkTypeControl        = "control"
	NetworkTypePCISRIOV       = "pci-sriov"
	NetworkTypePCIPassthrough = "pci-passthrough"
)

const (
	InterfaceTypeEthernet = "ethernet"
	InterfaceTypeAE       = "ae"
	InterfaceTypeVLAN     = "vlan"
)

const (
	PersonalityController = "controller"
	PersonalityWorker     = "worker"
	PersonalityStorage    = "storage"
)

const (
	SystemModeDuplex  = "duplex"
	SystemModeSimplex = "simplex"

	DistributedCloudSystemController = "systemcontroller"
	DistributedCloudSubcloud         = "subcloud"
)

var (
	PlatformNetworkTypes = []string{
		NetworkTypePXEBoot,
		NetworkTypeMgmt,
		NetworkTypeInfra,
		NetworkTypeOAM,
		NetworkTypeDataVRS,
		NetworkTypeBMC,
		NetworkTypeControl,
	}
	DataNetworkTypes = []string{NetworkTypeData}
	PCINetworkTypes  = []string{NetworkTypePCISRIOV, NetworkTypePCIPassthrough}
)

type Interface struct {
	ID               int64    `json:"id" yaml:"id"`
	UUID             string   `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name             string   `json:"name" yaml:"name"`
	Type             string   `json:"type" yaml:"type"`
	NetworkTypes     []string `json:"network_types,omitempty" yaml:"network_types,omitempty"`
	MTU              int      `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	VLANID           int      `json:"vlan_id,omitempty" yaml:"vlan_id,omitempty"`
	MAC              string   `json:"mac,omitempty" yaml:"mac,omitempty"`
	AEMode           string   `json:"ae_mode,omitempty" yaml:"ae_mode,omitempty"`
	TxHashPolicy     string   `json:"tx_hash_policy,omitempty" yaml:"tx_hash_policy,omitempty"`
	SriovNumVFs      int      `json:"sriov_numvfs,omitempty" yaml:"sriov_numvfs,omitempty"`
	ProviderNetworks []string `json:"provider_networks,omitempty" yaml:"provider_networks,omitempty"`
	Uses             []string `json:"uses,omitempty" yaml:"uses,omitempty"`
	UsedBy           []string `json:"used_by,omitempty" yaml:"used_by,omitempty"`
}

// PrimaryNetworkType returns the network type that drives classification of
// an interface carrying more than one type. An empty string means none.
func (i *Interface) PrimaryNetworkType() string {
	types := make([]string, 0, len(i.NetworkTypes))
	for _, t := range i.NetworkTypes {
		if t != "" && t != NetworkTypeNone {
			types = append(types, t)
		}
	}

	switch len(types) {
	case 0:
		return ""
	case 1:
		return types[0]
	}

	for _, preferred := range []string{NetworkTypePCISRIOV, NetworkTypePCIPassthrough, NetworkTypeData} {
		if slices.Contains(types, preferred) {
			return preferred
		}
	}
	return types[0]
}

func (i *Interface) HasNetworkType(networkType string) bool {
	return slices.Contains(i.NetworkTypes, networkType)
}

type Port struct {
	InterfaceID int64  `json:"interface_id" yaml:"interface_id"`
	Name        string `json:"name" yaml:"name"`
	PCIAddress  string `json:"pci_address,omitempty" yaml:"pci_address,omitempty"`
	Driver      string `json:"driver,omitempty" yaml:"driver,omitempty"`
	DPDKSupport bool   `json:"dpdk_support" yaml:"dpdk_support"`
	MAC         string `json:"mac,omitempty" yaml:"mac,omitempty"`
}

type Address struct {
	Interface   string `json:"interface" yaml:"interface"`
	Family      int    `json:"family" yaml:"family"`
	Prefix      int    `json:"prefix" yaml:"prefix"`
	Address     string `json:"address" yaml:"address"`
	NetworkType string `json:"network_type,omitempty" yaml:"network_type,omitempty"`
}

type Route struct {
	Interface string `json:"interface" yaml:"interface"`
	Network   string `json:"network" yaml:"network"`
	Prefix    int    `json:"prefix" yaml:"prefix"`
	Gateway   string `json:"gateway" yaml:"gateway"`
	Metric    int    `json:"metric" yaml:"metric"`
}

type Network struct {
	Type         string `json:"type" yaml:"type"`
	LinkCapacity int    `json:"link_capacity,omitempty" yaml:"link_capacity,omitempty"`
	MTU          int    `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	VLANID       int    `json:"vlan_id,omitempty" yaml:"vlan_id,omitempty"`
}

type ProviderNetwork struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	MTU  int    `json:"mtu,omitempty" yaml:"mtu,omitempty"`
}

type Host struct {
	Hostname     string   `json:"hostname" yaml:"hostname"`
	Personality  string   `json:"personality" yaml:"personality"`
	Subfunctions []string `json:"subfunctions,omitempty" yaml:"subfunctions,omitempty"`
	SystemUUID   string   `json:"system_uuid,omitempty" yaml:"system_uuid,omitempty"`
}

type Platform struct {
	SystemMode           string   `json:"system_mode,omitempty" yaml:"system_mode,omitempty"`
	DistributedCloudRole string   `json:"distributed_cloud_role,omitempty" yaml:"distributed_cloud_role,omitempty"`
	BMCAddress           *Address `json:"bmc_address,omitempty" yaml:"bmc_address,omitempty"`
}

// Snapshot is everything the query layer returns for one host.
type Snapshot struct {
	Host             Host                       `json:"host" yaml:"host"`
	Platform         Platform                   `json:"platform" yaml:"platform"`
	Ports            []Port                     `json:"ports,omitempty" yaml:"ports,omitempty"`
	Interfaces       []Interface                `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Addresses        []Address                  `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Routes           []Route                    `json:"routes,omitempty" yaml:"routes,omitempty"`
	Networks         []Network                  `json:"networks,omitempty" yaml:"networks,omitempty"`
	Gateways         map[string]string          `json:"gateways,omitempty" yaml:"gateways,omitempty"`
	FloatingIPs      map[string]string          `json:"floating_ips,omitempty" yaml:"floating_ips,omitempty"`
	ProviderNetworks map[string]ProviderNetwork `json:"provider_networks,omitempty" yaml:"provider_networks,omitempty"`
}
