package classify

import (
	"fmt"
	"net"
	"strconv"

	"inet.af/netaddr"

	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

const (
	MethodManual   = "manual"
	MethodStatic   = "static"
	MethodDHCP     = "dhcp"
	MethodLoopback = "loopback"

	FamilyInet  = "inet"
	FamilyInet6 = "inet6"
)

const trafficClassifierScript = "/usr/local/bin/cgcs_tc_setup.sh"

// PrimaryAddress is the first address assigned to an interface with its
// netmask resolved.
type PrimaryAddress struct {
	topology.Address
	Netmask string
}

func (c *Classifier) AddressMethod(iface *topology.Interface) string {
	switch networkType := iface.PrimaryNetworkType(); networkType {
	case "":
		return MethodManual
	case topology.NetworkTypeData:
		return MethodManual
	case topology.NetworkTypeControl, topology.NetworkTypeDataVRS, topology.NetworkTypeBMC:
		return MethodStatic
	case topology.NetworkTypePCISRIOV, topology.NetworkTypePCIPassthrough:
		return MethodManual
	default:
		if c.IsController() {
			return MethodStatic
		}
		if networkType == topology.NetworkTypePXEBoot {
			return MethodManual
		}
		return MethodDHCP
	}
}

func (c *Classifier) PrimaryAddress(iface *topology.Interface) (*PrimaryAddress, error) {
	addrs := c.idx.Addresses[iface.Name]
	if len(addrs) == 0 {
		return nil, nil
	}

	netmask, err := Netmask(addrs[0].Address, addrs[0].Prefix)
	if err != nil {
		return nil, fmt.Errorf("interface %s: %w", iface.Name, err)
	}
	return &PrimaryAddress{Address: addrs[0], Netmask: netmask}, nil
}

// AddressFamily defaults to inet when the interface has no address.
func (c *Classifier) AddressFamily(iface *topology.Interface) string {
	addrs := c.idx.Addresses[iface.Name]
	if len(addrs) == 0 {
		return FamilyInet
	}
	ip, err := netaddr.ParseIP(addrs[0].Address)
	if err != nil || ip.Is4() {
		return FamilyInet
	}
	return FamilyInet6
}

func (c *Classifier) Gateway(iface *topology.Interface) (string, bool) {
	gw, ok := c.idx.Gateways[iface.PrimaryNetworkType()]
	return gw, ok && gw != ""
}

func (c *Classifier) NetworkSpeed(networkType string) int {
	if network, ok := c.idx.Networks[networkType]; ok {
		return network.LinkCapacity
	}
	return 0
}

// TrafficClassifier returns the post-up shaping command for mgmt and infra
// interfaces.
func (c *Classifier) TrafficClassifier(iface *topology.Interface) (string, bool) {
	networkType := iface.PrimaryNetworkType()
	if networkType != topology.NetworkTypeMgmt && networkType != topology.NetworkTypeInfra {
		return "", false
	}
	return fmt.Sprintf("%s %s %s %d > /dev/null",
		trafficClassifierScript, c.OSName(iface), networkType, c.NetworkSpeed(networkType)), true
}

// Netmask renders an IPv4 mask in dotted decimal and an IPv6 mask as the
// decimal prefix length. Interface addresses use this form.
func Netmask(address string, prefix int) (string, error) {
	ip, err := parsePrefix(address, prefix)
	if err != nil {
		return "", err
	}
	if ip.Is6() {
		return strconv.Itoa(prefix), nil
	}
	return expandMask(ip, prefix), nil
}

// FullNetmask renders the mask in address notation for both families, so a
// /64 becomes ffff:ffff:ffff:ffff::. Routes use this form.
func FullNetmask(address string, prefix int) (string, error) {
	ip, err := parsePrefix(address, prefix)
	if err != nil {
		return "", err
	}
	return expandMask(ip, prefix), nil
}

func parsePrefix(address string, prefix int) (netaddr.IP, error) {
	ip, err := netaddr.ParseIP(address)
	if err != nil {
		return netaddr.IP{}, err
	}
	if prefix < 0 || prefix > int(ip.BitLen()) {
		return netaddr.IP{}, fmt.Errorf("prefix %d out of range for %s", prefix, address)
	}
	return ip, nil
}

func expandMask(ip netaddr.IP, prefix int) string {
	mask := netaddr.IPPrefixFrom(ip, uint8(prefix)).IPNet().Mask
	return net.IP(mask).String()
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
