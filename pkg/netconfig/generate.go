package netconfig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/veesix-networks/hostnet/pkg/classify"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

const sriovNumVFsPath = "/sys/class/net/%s/device/sriov_numvfs"

var (
	activeStandbyAEModes = []string{"active_backup", "active-backup", "active_standby"}
	balancedAEModes      = []string{"balanced", "balanced-xor"}
	lacpAEModes          = []string{"802.3ad"}
)

// generator adds the options specific to one interface type.
type generator interface {
	augment(c *classify.Classifier, iface *topology.Interface, cfg *NetworkConfig)
}

type (
	ethernetGenerator struct{}
	bondGenerator     struct{}
	vlanGenerator     struct{}
)

func generatorFor(iface *topology.Interface) generator {
	switch iface.Type {
	case topology.InterfaceTypeVLAN:
		return vlanGenerator{}
	case topology.InterfaceTypeAE:
		return bondGenerator{}
	default:
		return ethernetGenerator{}
	}
}

// Generate produces the interface resources for iface, plus the bridge pair
// when it is bridged, and its routes.
func Generate(c *classify.Classifier, iface *topology.Interface) (*Resources, error) {
	cfg, err := Interface(c, iface)
	if err != nil {
		return nil, err
	}

	res := &Resources{Interfaces: []*NetworkConfig{cfg}}

	if c.IsBridged(iface) {
		avp, bridge := Bridged(c, cfg, iface)
		res.Interfaces = append(res.Interfaces, avp, bridge)
	}

	for _, route := range c.Index().Routes[iface.Name] {
		rc, err := Route(route, cfg.Ifname)
		if err != nil {
			return nil, fmt.Errorf("route on %s: %w", iface.Name, err)
		}
		res.Routes = append(res.Routes, rc)
	}

	return res, nil
}

func Interface(c *classify.Classifier, iface *topology.Interface) (*NetworkConfig, error) {
	cfg := basic(c.OSName(iface), c.AddressMethod(iface), c.AddressFamily(iface), iface.MTU)

	if err := common(c, iface, cfg); err != nil {
		return nil, err
	}

	generatorFor(iface).augment(c, iface, cfg)
	return cfg, nil
}

// common applies the options shared by every interface that terminates IP
// traffic.
func common(c *classify.Classifier, iface *topology.Interface, cfg *NetworkConfig) error {
	if cmd, ok := c.TrafficClassifier(iface); ok {
		cfg.Options["post_up"] = cmd
	}

	if cfg.Method != classify.MethodStatic {
		return nil
	}

	addr, err := c.PrimaryAddress(iface)
	if err != nil {
		return err
	}
	if addr == nil {
		networkType := iface.PrimaryNetworkType()
		if networkType == topology.NetworkTypeControl {
			return nil
		}
		return &MissingAddressError{Interface: iface.Name, NetworkType: networkType}
	}

	cfg.IPAddress = addr.Address.Address
	cfg.Netmask = addr.Netmask

	if gw, ok := c.Gateway(iface); ok {
		cfg.Gateway = gw
	}
	return nil
}

func (vlanGenerator) augment(c *classify.Classifier, iface *topology.Interface, cfg *NetworkConfig) {
	cfg.Options["VLAN"] = "yes"
	cfg.Options["pre_up"] = "/sbin/modprobe -q 8021q"
}

func (bondGenerator) augment(c *classify.Classifier, iface *topology.Interface, cfg *NetworkConfig) {
	cfg.Options["MACADDR"] = strings.TrimRight(iface.MAC, " \t\r\n")
	if opts, ok := BondingOptions(iface.AEMode, iface.TxHashPolicy); ok {
		cfg.Options["BONDING_OPTS"] = opts
		cfg.Options["up"] = "sleep 10"
	}
}

// BondingOptions maps an aggregated ethernet mode to kernel bonding options.
// Unrecognised modes produce no options.
func BondingOptions(aeMode, txHashPolicy string) (string, bool) {
	switch {
	case slices.Contains(activeStandbyAEModes, aeMode):
		return "mode=active-backup miimon=100", true
	case slices.Contains(balancedAEModes, aeMode):
		return fmt.Sprintf("mode=balance-xor xmit_hash_policy=%s miimon=100", txHashPolicy), true
	case slices.Contains(lacpAEModes, aeMode):
		return fmt.Sprintf("mode=802.3ad lacp_rate=fast xmit_hash_policy=%s miimon=100", txHashPolicy), true
	}
	return "", false
}

func (ethernetGenerator) augment(c *classify.Classifier, iface *topology.Interface, cfg *NetworkConfig) {
	// some devices need longer than the default to finish auto-negotiation
	cfg.Options["LINKDELAY"] = "20"

	if bridge, ok := c.BridgeName(iface); ok {
		cfg.Options["BRIDGE"] = bridge
		return
	}
	if master, ok := c.Master(iface); ok {
		cfg.Options["SLAVE"] = "yes"
		cfg.Options["MASTER"] = master
		cfg.Options["PROMISC"] = "yes"
		return
	}

	portName := c.OSName(iface)
	switch iface.PrimaryNetworkType() {
	case topology.NetworkTypePCISRIOV:
		// CX3 enables VFs through mlx4_core module options instead
		if !c.IsMellanoxCX3(iface) {
			path := fmt.Sprintf(sriovNumVFsPath, portName)
			cfg.Options["pre_up"] = fmt.Sprintf("echo 0 > %s; echo %d > %s", path, iface.SriovNumVFs, path)
		}
	case topology.NetworkTypePCIPassthrough:
		path := fmt.Sprintf(sriovNumVFsPath, portName)
		cfg.Options["pre_up"] = fmt.Sprintf("if [ -f  %s ]; then echo 0 > %s; fi", path, path)
	}
}

// Bridged returns the avp clone of a bridged interface config and the bridge
// joining the two:
//
//	eth0 -> br-eth0 <- eth0-avp
func Bridged(c *classify.Classifier, cfg *NetworkConfig, iface *topology.Interface) (avp, bridge *NetworkConfig) {
	avp = cfg.Clone()
	avp.Ifname += "-avp"

	bridge = basic("br-"+c.OSName(iface), c.AddressMethod(iface), c.AddressFamily(iface), 0)
	bridge.Options["TYPE"] = "Bridge"
	return avp, bridge
}

func Route(route topology.Route, ifname string) (*RouteConfig, error) {
	rc := &RouteConfig{
		Name:      "default",
		Ensure:    EnsurePresent,
		Gateway:   route.Gateway,
		Interface: ifname,
		Netmask:   "0.0.0.0",
		Network:   "default",
		Options:   fmt.Sprintf("metric %d", route.Metric),
	}
	if route.Prefix == 0 {
		return rc, nil
	}

	netmask, err := classify.FullNetmask(route.Network, route.Prefix)
	if err != nil {
		return nil, err
	}
	rc.Name = fmt.Sprintf("%s/%d", route.Network, route.Prefix)
	rc.Netmask = netmask
	rc.Network = route.Network
	return rc, nil
}

func Loopback() *NetworkConfig {
	return basic(LoopbackIfname, classify.MethodLoopback, classify.FamilyInet, 0)
}
