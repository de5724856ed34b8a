package netconfig

import (
	"slices"

	"github.com/veesix-networks/hostnet/pkg/classify"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

// FloatingAddresses attaches each floating IP to the interface carrying its
// network type. A pxeboot address with no pxeboot interface lands on mgmt.
func FloatingAddresses(c *classify.Classifier) map[string]*AddressConfig {
	idx := c.Index()
	result := make(map[string]*AddressConfig, len(idx.FloatingIPs))

	networkTypes := make([]string, 0, len(idx.FloatingIPs))
	for networkType := range idx.FloatingIPs {
		networkTypes = append(networkTypes, networkType)
	}
	slices.Sort(networkTypes)

	for _, networkType := range networkTypes {
		address := idx.FloatingIPs[networkType]

		iface, ok := idx.FindByNetworkType(networkType)
		if !ok && networkType == topology.NetworkTypePXEBoot {
			iface, ok = idx.FindByNetworkType(topology.NetworkTypeMgmt)
		}
		if !ok {
			continue
		}

		result[networkType] = &AddressConfig{
			Ifname:  c.OSName(iface),
			Address: address,
		}
	}
	return result
}
