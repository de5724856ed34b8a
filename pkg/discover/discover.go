// Package discover builds port inventory from the kernel's view of the
// host's network devices.
package discover

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vishvananda/netlink"
	"github.com/vishvananda/netns"
	"golang.org/x/sys/unix"

	"github.com/veesix-networks/hostnet/pkg/logger"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/nic"
)

type Options struct {
	// Namespace is a named network namespace. Empty means the current one.
	Namespace string
	Sysfs     nic.Sysfs
	Logger    *slog.Logger
}

type Result struct {
	Ports      []topology.Port      `json:"ports" yaml:"ports"`
	Interfaces []topology.Interface `json:"interfaces" yaml:"interfaces"`
}

func Ports(ctx context.Context, opts Options) (*Result, error) {
	if opts.Sysfs.Root == "" {
		opts.Sysfs = nic.DefaultSysfs
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get(logger.Discover)
	}

	links, err := listLinks(opts.Namespace)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return fromLinks(links, opts.Sysfs, opts.Logger), nil
}

func listLinks(namespace string) ([]netlink.Link, error) {
	if namespace == "" {
		links, err := netlink.LinkList()
		if err != nil {
			return nil, fmt.Errorf("list links: %w", err)
		}
		return links, nil
	}

	nsHandle, err := netns.GetFromName(namespace)
	if err != nil {
		return nil, fmt.Errorf("get netns %q: %w", namespace, err)
	}
	defer nsHandle.Close()

	h, err := netlink.NewHandleAt(nsHandle)
	if err != nil {
		return nil, fmt.Errorf("create netlink handle for netns %q: %w", namespace, err)
	}
	defer h.Close()

	links, err := h.LinkList()
	if err != nil {
		return nil, fmt.Errorf("list links in netns %q: %w", namespace, err)
	}
	return links, nil
}

// fromLinks keeps physical ethernet devices backed by a PCI function. Ports
// and their interface stubs share an id assigned in name order.
func fromLinks(links []netlink.Link, sysfs nic.Sysfs, log *slog.Logger) *Result {
	var ports []topology.Port
	for _, link := range links {
		attrs := link.Attrs()
		if attrs.RawFlags&unix.IFF_LOOPBACK != 0 || link.Type() != "device" {
			continue
		}
		if arphrd, err := sysfs.NetdevType(attrs.Name); err == nil && arphrd != unix.ARPHRD_ETHER {
			continue
		}

		pci, err := sysfs.NetdevPCIAddress(attrs.Name)
		if err != nil {
			log.Debug("Skipping device without PCI function", "link", attrs.Name)
			continue
		}

		port := topology.Port{
			Name:       attrs.Name,
			PCIAddress: pci,
			MAC:        attrs.HardwareAddr.String(),
		}
		if driver, err := sysfs.NetdevDriver(attrs.Name); err == nil {
			port.Driver = driver
		}
		if vendor, err := sysfs.DetectVendor(pci); err == nil {
			port.DPDKSupport = vendor.BindStrategy().DPDKCapable()
		} else {
			log.Warn("Failed to detect NIC vendor", "link", attrs.Name, "pci", pci, "error", err)
		}
		ports = append(ports, port)
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })

	res := &Result{}
	for i := range ports {
		id := int64(i + 1)
		ports[i].InterfaceID = id
		res.Interfaces = append(res.Interfaces, topology.Interface{
			ID:   id,
			Name: ports[i].Name,
			Type: topology.InterfaceTypeEthernet,
			MAC:  ports[i].MAC,
		})
	}
	res.Ports = ports
	return res
}
