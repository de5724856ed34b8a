package ifmgr

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

var (
	ErrUnknownInterface = errors.New("unknown interface")
	ErrVLANLower        = errors.New("vlan interface has more than one lower interface")
)

// Index is the typed lookup context for one resolution pass. It owns copies of
// the snapshot entities so the caller's snapshot is never modified.
type Index struct {
	Host     topology.Host
	Platform topology.Platform

	PortsByInterfaceID map[int64]*topology.Port
	Interfaces         map[string]*topology.Interface
	DevicesByPCI       map[string][]*topology.Port
	Addresses          map[string][]topology.Address
	Routes             map[string][]topology.Route
	Networks           map[string]topology.Network
	DataNetworks       []topology.Network
	Gateways           map[string]string
	FloatingIPs        map[string]string
	ProviderNetworks   map[string]topology.ProviderNetwork

	names []string
}

type Option func(*builder)

type builder struct {
	logger *slog.Logger
}

func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

func Build(snap *topology.Snapshot, opts ...Option) (*Index, error) {
	b := &builder{logger: logger.Get(logger.Topology)}
	for _, opt := range opts {
		opt(b)
	}

	idx := &Index{
		Host:               snap.Host,
		Platform:           snap.Platform,
		PortsByInterfaceID: make(map[int64]*topology.Port, len(snap.Ports)),
		Interfaces:         make(map[string]*topology.Interface, len(snap.Interfaces)+1),
		DevicesByPCI:       make(map[string][]*topology.Port),
		Addresses:          make(map[string][]topology.Address),
		Routes:             make(map[string][]topology.Route),
		Networks:           make(map[string]topology.Network, len(snap.Networks)),
		Gateways:           make(map[string]string, len(snap.Gateways)),
		FloatingIPs:        make(map[string]string, len(snap.FloatingIPs)),
		ProviderNetworks:   make(map[string]topology.ProviderNetwork, len(snap.ProviderNetworks)),
	}

	for i := range snap.Ports {
		port := snap.Ports[i]
		idx.PortsByInterfaceID[port.InterfaceID] = &port
		idx.DevicesByPCI[port.PCIAddress] = append(idx.DevicesByPCI[port.PCIAddress], &port)
	}

	for i := range snap.Interfaces {
		iface := snap.Interfaces[i]
		iface.NetworkTypes = slices.Clone(iface.NetworkTypes)
		iface.ProviderNetworks = slices.Clone(iface.ProviderNetworks)
		iface.Uses = slices.Clone(iface.Uses)
		iface.UsedBy = slices.Clone(iface.UsedBy)
		idx.Interfaces[iface.Name] = &iface
	}

	for _, addr := range snap.Addresses {
		idx.Addresses[addr.Interface] = append(idx.Addresses[addr.Interface], addr)
	}

	for _, route := range snap.Routes {
		idx.Routes[route.Interface] = append(idx.Routes[route.Interface], route)
	}
	for _, routes := range idx.Routes {
		slices.SortStableFunc(routes, func(a, b topology.Route) int {
			if c := cmp.Compare(b.Prefix, a.Prefix); c != 0 {
				return c
			}
			return cmp.Compare(a.Network, b.Network)
		})
	}

	for _, network := range snap.Networks {
		if network.Type == topology.NetworkTypeData {
			idx.DataNetworks = append(idx.DataNetworks, network)
			if _, exists := idx.Networks[network.Type]; exists {
				continue
			}
		}
		idx.Networks[network.Type] = network
	}

	for k, v := range snap.Gateways {
		idx.Gateways[k] = v
	}
	for k, v := range snap.FloatingIPs {
		idx.FloatingIPs[k] = v
	}
	for k, v := range snap.ProviderNetworks {
		idx.ProviderNetworks[k] = v
	}

	if err := idx.linkEdges(); err != nil {
		return nil, err
	}

	if err := idx.checkAcyclic(); err != nil {
		return nil, err
	}

	idx.sortNames()

	if idx.Host.Personality == topology.PersonalityController {
		idx.addBMCInterface(b.logger)
	}

	b.logger.Debug("Built topology index",
		"interfaces", len(idx.Interfaces),
		"ports", len(idx.PortsByInterfaceID),
		"networks", len(idx.Networks))

	return idx, nil
}

// linkEdges makes UsedBy the exact transpose of Uses, keeping any declared
// UsedBy entries that agree with it.
func (idx *Index) linkEdges() error {
	upper := make(map[string][]string, len(idx.Interfaces))

	for name, iface := range idx.Interfaces {
		for _, lower := range iface.Uses {
			if _, ok := idx.Interfaces[lower]; !ok {
				return fmt.Errorf("interface %s uses %s: %w", name, lower, ErrUnknownInterface)
			}
			upper[lower] = append(upper[lower], name)
		}
	}

	for name, iface := range idx.Interfaces {
		for _, u := range iface.UsedBy {
			other, ok := idx.Interfaces[u]
			if !ok {
				return fmt.Errorf("interface %s used by %s: %w", name, u, ErrUnknownInterface)
			}
			if !slices.Contains(other.Uses, name) {
				if other.Type == topology.InterfaceTypeVLAN && len(other.Uses) > 0 {
					return fmt.Errorf("interface %s used by %s, which already uses %s: %w",
						name, u, other.Uses[0], ErrVLANLower)
				}
				other.Uses = append(other.Uses, name)
				upper[name] = append(upper[name], u)
			}
		}
	}

	for name, iface := range idx.Interfaces {
		users := upper[name]
		slices.Sort(users)
		iface.UsedBy = slices.Compact(users)
	}

	return nil
}

func (idx *Index) sortNames() {
	idx.names = make([]string, 0, len(idx.Interfaces))
	for name := range idx.Interfaces {
		idx.names = append(idx.names, name)
	}
	slices.Sort(idx.names)
}

func (idx *Index) addInterface(iface *topology.Interface) {
	idx.Interfaces[iface.Name] = iface
	idx.sortNames()
}

// Names returns all interface names in lexical order.
func (idx *Index) Names() []string {
	return idx.names
}

func (idx *Index) Interface(name string) (*topology.Interface, bool) {
	iface, ok := idx.Interfaces[name]
	return iface, ok
}

func (idx *Index) Port(iface *topology.Interface) (*topology.Port, bool) {
	if iface.Type != topology.InterfaceTypeEthernet {
		return nil, false
	}
	port, ok := idx.PortsByInterfaceID[iface.ID]
	return port, ok
}

// Lower returns the single interface a VLAN is stacked on.
func (idx *Index) Lower(iface *topology.Interface) (*topology.Interface, bool) {
	if len(iface.Uses) == 0 {
		return nil, false
	}
	return idx.Interface(iface.Uses[0])
}

// Ordered returns interfaces sorted ethernet first, then ae, then vlan, and
// by name within a type, so lower interfaces precede the ones stacked on them.
func (idx *Index) Ordered() []*topology.Interface {
	result := make([]*topology.Interface, 0, len(idx.names))
	for _, name := range idx.names {
		result = append(result, idx.Interfaces[name])
	}
	slices.SortStableFunc(result, func(a, b *topology.Interface) int {
		return cmp.Compare(typeRank(a.Type), typeRank(b.Type))
	})
	return result
}

func typeRank(ifType string) int {
	switch ifType {
	case topology.InterfaceTypeEthernet:
		return 0
	case topology.InterfaceTypeAE:
		return 1
	default:
		return 2
	}
}

// FindByNetworkType returns the first interface, in name order, whose primary
// network type matches. Only meaningful for types with one interface per host.
func (idx *Index) FindByNetworkType(networkType string) (*topology.Interface, bool) {
	for _, name := range idx.names {
		iface := idx.Interfaces[name]
		if iface.PrimaryNetworkType() == networkType {
			return iface, true
		}
	}
	return nil, false
}
