// Package classify derives per-interface facts for one resolution pass.
//
// Facts are stored in a side table owned by the Classifier and keyed by
// interface name; the indexed interfaces are never modified. A Classifier
// must not outlive the Index it was created from.
package classify

import (
	"slices"

	"github.com/veesix-networks/hostnet/pkg/ifmgr"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/nic"
)

type tristate int8

const (
	unknown tristate = iota
	no
	yes
)

func toTristate(b bool) tristate {
	if b {
		return yes
	}
	return no
}

type facts struct {
	platform tristate
	data     tristate
	dpdk     tristate
	master   *string
	osName   *string
	bridge   *string
}

type Classifier struct {
	idx   *ifmgr.Index
	facts map[string]*facts
}

func New(idx *ifmgr.Index) *Classifier {
	return &Classifier{
		idx:   idx,
		facts: make(map[string]*facts, len(idx.Interfaces)),
	}
}

func (c *Classifier) Index() *ifmgr.Index {
	return c.idx
}

func (c *Classifier) factsFor(iface *topology.Interface) *facts {
	f, ok := c.facts[iface.Name]
	if !ok {
		f = &facts{}
		c.facts[iface.Name] = f
	}
	return f
}

// anyUpper ORs pred over every interface stacked on iface, guarding against
// revisits within a single walk.
func (c *Classifier) anyUpper(iface *topology.Interface, visited map[string]bool, pred func(*topology.Interface, map[string]bool) bool) bool {
	for _, name := range iface.UsedBy {
		if visited[name] {
			continue
		}
		upper, ok := c.idx.Interface(name)
		if !ok {
			continue
		}
		if pred(upper, visited) {
			return true
		}
	}
	return false
}

func (c *Classifier) IsPlatform(iface *topology.Interface) bool {
	return c.isPlatform(iface, map[string]bool{})
}

func (c *Classifier) isPlatform(iface *topology.Interface, visited map[string]bool) bool {
	f := c.factsFor(iface)
	if f.platform != unknown {
		return f.platform == yes
	}
	visited[iface.Name] = true

	result := slices.Contains(topology.PlatformNetworkTypes, iface.PrimaryNetworkType()) ||
		c.anyUpper(iface, visited, c.isPlatform)

	f.platform = toTristate(result)
	return result
}

func (c *Classifier) IsData(iface *topology.Interface) bool {
	return c.isData(iface, map[string]bool{})
}

func (c *Classifier) isData(iface *topology.Interface, visited map[string]bool) bool {
	f := c.factsFor(iface)
	if f.data != unknown {
		return f.data == yes
	}
	visited[iface.Name] = true

	result := slices.Contains(topology.DataNetworkTypes, iface.PrimaryNetworkType()) ||
		c.anyUpper(iface, visited, c.isData)

	f.data = toTristate(result)
	return result
}

// IsPCI does not propagate: only the interface's own type counts.
func (c *Classifier) IsPCI(iface *topology.Interface) bool {
	return slices.Contains(topology.PCINetworkTypes, iface.PrimaryNetworkType())
}

// IsDPDKCompatible is decided by the port for ethernet interfaces. Bond and
// VLAN interfaces have no hardware binding and are always compatible.
func (c *Classifier) IsDPDKCompatible(iface *topology.Interface) bool {
	f := c.factsFor(iface)
	if f.dpdk != unknown {
		return f.dpdk == yes
	}

	result := true
	if iface.Type == topology.InterfaceTypeEthernet {
		port, ok := c.idx.Port(iface)
		result = ok && port.DPDKSupport
	}

	f.dpdk = toTristate(result)
	return result
}

func (c *Classifier) IsMellanox(iface *topology.Interface) bool {
	port, ok := c.idx.Port(iface)
	return ok && nic.IsMellanoxDriver(port.Driver)
}

func (c *Classifier) IsMellanoxCX3(iface *topology.Interface) bool {
	port, ok := c.idx.Port(iface)
	return ok && nic.IsMellanoxCX3Driver(port.Driver)
}

// Master returns the bond an ethernet interface is enslaved to.
func (c *Classifier) Master(iface *topology.Interface) (string, bool) {
	f := c.factsFor(iface)
	if f.master == nil {
		master := ""
		if iface.Type == topology.InterfaceTypeEthernet {
			for _, name := range iface.UsedBy {
				if upper, ok := c.idx.Interface(name); ok && upper.Type == topology.InterfaceTypeAE {
					master = upper.Name
					break
				}
			}
		}
		f.master = &master
	}
	return *f.master, *f.master != ""
}

func (c *Classifier) IsSlave(iface *topology.Interface) bool {
	_, ok := c.Master(iface)
	return ok
}

// OSName is the kernel device name. Ethernet maps to its port, a bond keeps
// its own name and a VLAN is named after its lower device.
func (c *Classifier) OSName(iface *topology.Interface) string {
	return c.osName(iface, map[string]bool{})
}

func (c *Classifier) osName(iface *topology.Interface, visited map[string]bool) string {
	f := c.factsFor(iface)
	if f.osName != nil {
		return *f.osName
	}
	visited[iface.Name] = true

	name := iface.Name
	switch iface.Type {
	case topology.InterfaceTypeEthernet:
		if port, ok := c.idx.Port(iface); ok {
			name = port.Name
		}
	case topology.InterfaceTypeVLAN:
		if lower, ok := c.idx.Lower(iface); ok && !visited[lower.Name] {
			name = c.osName(lower, visited) + "." + itoa(iface.VLANID)
		}
	}

	f.osName = &name
	return name
}

// BridgeName is set for slow data ports: ethernet data interfaces without a
// poll mode driver are bridged into the vswitch.
func (c *Classifier) BridgeName(iface *topology.Interface) (string, bool) {
	f := c.factsFor(iface)
	if f.bridge == nil {
		bridge := ""
		if iface.Type == topology.InterfaceTypeEthernet && c.IsData(iface) && !c.IsDPDKCompatible(iface) {
			bridge = "br-" + c.OSName(iface)
		}
		f.bridge = &bridge
	}
	return *f.bridge, *f.bridge != ""
}

func (c *Classifier) IsBridged(iface *topology.Interface) bool {
	_, ok := c.BridgeName(iface)
	return ok
}

// NeedsConfig reports whether the interface must exist in the kernel.
func (c *Classifier) NeedsConfig(iface *topology.Interface) bool {
	if c.IsPlatform(iface) {
		return true
	}
	if !c.IsWorker() {
		return false
	}
	if c.IsData(iface) && !c.IsDPDKCompatible(iface) {
		return true
	}
	if c.IsData(iface) && c.IsMellanox(iface) {
		return true
	}
	return c.IsPCI(iface)
}

func (c *Classifier) IsController() bool {
	return c.idx.Host.Personality == topology.PersonalityController
}

// IsWorker is true for worker nodes and for any node with a worker subfunction.
func (c *Classifier) IsWorker() bool {
	return c.idx.Host.Personality == topology.PersonalityWorker ||
		slices.Contains(c.idx.Host.Subfunctions, topology.PersonalityWorker)
}
