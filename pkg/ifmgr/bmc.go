package ifmgr

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

const BMCInterfaceName = "bmc0"

// addBMCInterface injects a VLAN interface for the board management network,
// which only exists as platform attributes and has no interface record.
func (idx *Index) addBMCInterface(log *slog.Logger) {
	network, ok := idx.Networks[topology.NetworkTypeBMC]
	if !ok {
		return
	}
	if _, exists := idx.Interfaces[BMCInterfaceName]; exists {
		return
	}
	if _, exists := idx.FindByNetworkType(topology.NetworkTypeBMC); exists {
		return
	}

	lower := idx.bmcLowerInterface()
	if lower == nil {
		log.Debug("No pxeboot or mgmt interface for BMC network")
		return
	}

	addr := idx.Platform.BMCAddress
	if addr == nil {
		log.Warn("BMC network configured without a BMC address, skipping", "lower", lower.Name)
		return
	}

	iface := &topology.Interface{
		UUID:         bmcUUID(idx.Host),
		Name:         BMCInterfaceName,
		Type:         topology.InterfaceTypeVLAN,
		NetworkTypes: []string{topology.NetworkTypeBMC},
		MTU:          network.MTU,
		VLANID:       network.VLANID,
		Uses:         []string{lower.Name},
	}
	lower.UsedBy = append(lower.UsedBy, BMCInterfaceName)

	idx.addInterface(iface)
	idx.Addresses[BMCInterfaceName] = []topology.Address{{
		Interface:   BMCInterfaceName,
		Family:      addr.Family,
		Prefix:      addr.Prefix,
		Address:     addr.Address,
		NetworkType: topology.NetworkTypeBMC,
	}}

	log.Debug("Added synthetic BMC interface", "lower", lower.Name, "vlan", network.VLANID)
}

// bmcLowerInterface prefers pxeboot over mgmt so the BMC VLAN is not stacked
// on top of another VLAN.
func (idx *Index) bmcLowerInterface() *topology.Interface {
	if iface, ok := idx.FindByNetworkType(topology.NetworkTypePXEBoot); ok {
		return iface
	}
	if iface, ok := idx.FindByNetworkType(topology.NetworkTypeMgmt); ok {
		return iface
	}
	return nil
}

// bmcUUID is stable per host so repeated resolutions agree.
func bmcUUID(host topology.Host) string {
	namespace := uuid.NameSpaceOID
	if parsed, err := uuid.Parse(host.SystemUUID); err == nil {
		namespace = parsed
	}
	return uuid.NewSHA1(namespace, []byte(host.Hostname+"/"+BMCInterfaceName)).String()
}
