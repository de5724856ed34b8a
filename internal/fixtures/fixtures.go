// Package fixtures holds topology snapshots shared by package tests.
package fixtures

import "github.com/veesix-networks/hostnet/pkg/models/topology"

// Controller is a duplex controller: pxeboot on eth0, mgmt and infra VLANs
// over an LACP bond of eth1 and eth2, and OAM on eth3.
func Controller() *topology.Snapshot {
	return &topology.Snapshot{
		Host: topology.Host{
			Hostname:    "controller-0",
			Personality: topology.PersonalityController,
			Subfunctions: []string{
				topology.PersonalityController,
			},
			SystemUUID: "5c2b2a6e-4c5f-4c36-9a53-8a9f0d0b7e11",
		},
		Platform: topology.Platform{
			SystemMode: topology.SystemModeDuplex,
			BMCAddress: &topology.Address{Family: 4, Prefix: 24, Address: "192.168.5.3"},
		},
		Ports: []topology.Port{
			{InterfaceID: 1, Name: "enp0s3", PCIAddress: "0000:00:03.0", Driver: "e1000"},
			{InterfaceID: 2, Name: "enp0s8", PCIAddress: "0000:00:08.0", Driver: "ixgbe", DPDKSupport: true},
			{InterfaceID: 3, Name: "enp0s9", PCIAddress: "0000:00:09.0", Driver: "ixgbe", DPDKSupport: true},
			{InterfaceID: 4, Name: "enp0s10", PCIAddress: "0000:00:0a.0", Driver: "e1000"},
		},
		Interfaces: []topology.Interface{
			{ID: 1, Name: "eth0", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypePXEBoot}, MTU: 1500},
			{ID: 2, Name: "eth1", Type: topology.InterfaceTypeEthernet, MTU: 9000, UsedBy: []string{"bond0"}},
			{ID: 3, Name: "eth2", Type: topology.InterfaceTypeEthernet, MTU: 9000, UsedBy: []string{"bond0"}},
			{
				ID: 5, Name: "bond0", Type: topology.InterfaceTypeAE, MTU: 9000,
				MAC: "08:00:27:aa:bb:cc\n", AEMode: "802.3ad", TxHashPolicy: "layer2",
				Uses: []string{"eth1", "eth2"},
			},
			{ID: 6, Name: "vlan100", Type: topology.InterfaceTypeVLAN, NetworkTypes: []string{topology.NetworkTypeMgmt}, MTU: 1500, VLANID: 100, Uses: []string{"bond0"}},
			{ID: 7, Name: "vlan101", Type: topology.InterfaceTypeVLAN, NetworkTypes: []string{topology.NetworkTypeInfra}, MTU: 9000, VLANID: 101, Uses: []string{"bond0"}},
			{ID: 4, Name: "eth3", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypeOAM}, MTU: 1500},
		},
		Addresses: []topology.Address{
			{Interface: "eth0", Family: 4, Prefix: 24, Address: "169.254.202.3", NetworkType: topology.NetworkTypePXEBoot},
			{Interface: "vlan100", Family: 4, Prefix: 24, Address: "192.168.204.3", NetworkType: topology.NetworkTypeMgmt},
			{Interface: "vlan101", Family: 4, Prefix: 24, Address: "192.168.205.3", NetworkType: topology.NetworkTypeInfra},
			{Interface: "eth3", Family: 4, Prefix: 24, Address: "10.10.10.3", NetworkType: topology.NetworkTypeOAM},
		},
		Routes: []topology.Route{
			{Interface: "eth3", Network: "0.0.0.0", Prefix: 0, Gateway: "10.10.10.1", Metric: 1},
			{Interface: "eth3", Network: "10.20.0.0", Prefix: 16, Gateway: "10.10.10.254", Metric: 1},
			{Interface: "eth3", Network: "10.20.30.0", Prefix: 24, Gateway: "10.10.10.253", Metric: 1},
		},
		Networks: []topology.Network{
			{Type: topology.NetworkTypePXEBoot, MTU: 1500},
			{Type: topology.NetworkTypeMgmt, LinkCapacity: 1000, MTU: 1500, VLANID: 100},
			{Type: topology.NetworkTypeInfra, LinkCapacity: 10000, MTU: 9000, VLANID: 101},
			{Type: topology.NetworkTypeOAM, MTU: 1500},
			{Type: topology.NetworkTypeBMC, MTU: 1500, VLANID: 5},
		},
		Gateways: map[string]string{
			topology.NetworkTypeOAM: "10.10.10.1",
		},
		FloatingIPs: map[string]string{
			topology.NetworkTypeMgmt:    "192.168.204.2/24",
			topology.NetworkTypeOAM:     "10.10.10.2/24",
			topology.NetworkTypePXEBoot: "169.254.202.2/24",
		},
	}
}

// Worker is a worker node with kernel platform interfaces, a bridged slow
// data port, a Mellanox DPDK data port, SR-IOV ports on CX3 and Intel
// devices, a passthrough port and an accelerated data port.
func Worker() *topology.Snapshot {
	return &topology.Snapshot{
		Host: topology.Host{
			Hostname:     "compute-0",
			Personality:  topology.PersonalityWorker,
			Subfunctions: []string{topology.PersonalityWorker},
			SystemUUID:   "0f6b1f0c-3a52-4d1e-8b0e-7a4f4e2c9d21",
		},
		Platform: topology.Platform{SystemMode: topology.SystemModeDuplex},
		Ports: []topology.Port{
			{InterfaceID: 1, Name: "enp0s3", PCIAddress: "0000:00:03.0", Driver: "e1000"},
			{InterfaceID: 2, Name: "enp0s8", PCIAddress: "0000:00:08.0", Driver: "e1000"},
			{InterfaceID: 3, Name: "enp0s9", PCIAddress: "0000:00:09.0", Driver: "e1000"},
			{InterfaceID: 4, Name: "enp3s0", PCIAddress: "0000:03:00.0", Driver: "mlx5_core", DPDKSupport: true},
			{InterfaceID: 5, Name: "ens1f0", PCIAddress: "0000:81:00.0", Driver: "mlx4_core", DPDKSupport: true},
			{InterfaceID: 6, Name: "ens1f1", PCIAddress: "0000:81:00.0", Driver: "mlx4_core", DPDKSupport: true},
			{InterfaceID: 7, Name: "enp6s0", PCIAddress: "0000:06:00.0", Driver: "ixgbe", DPDKSupport: true},
			{InterfaceID: 8, Name: "enp7s0", PCIAddress: "0000:07:00.0", Driver: "ixgbe", DPDKSupport: true},
			{InterfaceID: 9, Name: "enp8s0", PCIAddress: "0000:08:00.0", Driver: "ixgbe", DPDKSupport: true},
		},
		Interfaces: []topology.Interface{
			{ID: 1, Name: "eth0", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypeMgmt}, MTU: 1500},
			{ID: 2, Name: "eth1", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypeInfra}, MTU: 1500, MAC: "08:00:27:11:22:33"},
			{ID: 3, Name: "eth2", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypeData}, MTU: 1600, ProviderNetworks: []string{"physnet0"}},
			{ID: 4, Name: "eth3", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypeData}, MTU: 9000, ProviderNetworks: []string{"physnet1"}},
			{ID: 5, Name: "eth4", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypePCISRIOV}, MTU: 1500, SriovNumVFs: 4},
			{ID: 6, Name: "eth5", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypePCISRIOV}, MTU: 1500, SriovNumVFs: 4},
			{ID: 7, Name: "eth6", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypePCISRIOV}, MTU: 1500, SriovNumVFs: 8},
			{ID: 8, Name: "eth7", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypePCIPassthrough}, MTU: 1500},
			{ID: 9, Name: "eth8", Type: topology.InterfaceTypeEthernet, NetworkTypes: []string{topology.NetworkTypeData}, MTU: 1500},
		},
		Routes: []topology.Route{
			{Interface: "eth2", Network: "10.50.0.0", Prefix: 24, Gateway: "10.50.0.1", Metric: 1},
		},
		Networks: []topology.Network{
			{Type: topology.NetworkTypeMgmt, LinkCapacity: 1000, MTU: 1500},
			{Type: topology.NetworkTypeInfra, LinkCapacity: 10000, MTU: 1500},
			{Type: topology.NetworkTypeData, MTU: 1600},
			{Type: topology.NetworkTypeData, MTU: 9000},
		},
		FloatingIPs: map[string]string{
			topology.NetworkTypeMgmt:    "192.168.204.2/24",
			topology.NetworkTypePXEBoot: "169.254.202.2/24",
		},
		ProviderNetworks: map[string]topology.ProviderNetwork{
			"physnet0": {Name: "physnet0", Type: "vlan", MTU: 1600},
			"physnet1": {Name: "physnet1", Type: "vxlan", MTU: 9000},
		},
	}
}
