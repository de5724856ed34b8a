package netconfig

import (
	"fmt"
	"strings"

	"github.com/veesix-networks/hostnet/pkg/classify"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/nic"
)

// Mlx4CoreOptions builds the mlx4_core module options enabling VFs on CX3
// devices configured for SR-IOV. Both ports of a CX3 card share one PCI
// address and only the first contributes an entry.
func Mlx4CoreOptions(c *classify.Classifier) string {
	idx := c.Index()

	var entries []string
	seen := make(map[string]bool)

	for _, name := range idx.Names() {
		iface := idx.Interfaces[name]
		if iface.Type != topology.InterfaceTypeEthernet {
			continue
		}
		if iface.PrimaryNetworkType() != topology.NetworkTypePCISRIOV {
			continue
		}
		port, ok := idx.Port(iface)
		if !ok || port.Driver != nic.DriverMlx4Core {
			continue
		}
		if seen[port.PCIAddress] {
			continue
		}
		seen[port.PCIAddress] = true
		entries = append(entries, fmt.Sprintf("%s-%d;0;0", port.PCIAddress, iface.SriovNumVFs))
	}

	if len(entries) == 0 {
		return ""
	}
	return "port_type_array=2,2 num_vfs=" + strings.Join(entries, ",")
}
