package nic

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Vendor interface {
	Name() string
	Match(vendorID string) bool
	BindStrategy() BindStrategy
}

type BindStrategy int

const (
	BindStrategyVFIO BindStrategy = iota
	BindStrategyBifurcated
	BindStrategyKernel
)

func (s BindStrategy) String() string {
	switch s {
	case BindStrategyVFIO:
		return "vfio-pci"
	case BindStrategyBifurcated:
		return "bifurcated"
	case BindStrategyKernel:
		return "kernel"
	default:
		return "unknown"
	}
}

// DPDKCapable reports whether a device bound with this strategy has a native
// poll mode driver.
func (s BindStrategy) DPDKCapable() bool {
	return s == BindStrategyVFIO || s == BindStrategyBifurcated
}

var registeredVendors = []Vendor{Mellanox{}, Intel{}}

func Register(v Vendor) {
	registeredVendors = append(registeredVendors, v)
}

// LookupVendor matches a PCI vendor id against the registered vendors,
// falling back to Generic.
func LookupVendor(vendorID string) Vendor {
	vendorID = strings.ToLower(strings.TrimPrefix(vendorID, "0x"))
	for _, vendor := range registeredVendors {
		if vendor.Match(vendorID) {
			return vendor
		}
	}
	return Generic{}
}

// Sysfs reads device attributes below Root, which is /sys on a live system.
type Sysfs struct {
	Root string
}

var DefaultSysfs = Sysfs{Root: "/sys"}

func (s Sysfs) DetectVendor(pci string) (Vendor, error) {
	vendorID, err := s.PCIVendorID(pci)
	if err != nil {
		return nil, err
	}
	return LookupVendor(vendorID), nil
}

func (s Sysfs) PCIVendorID(pci string) (string, error) {
	return s.readHex(filepath.Join(s.Root, "bus/pci/devices", pci, "vendor"))
}

func (s Sysfs) PCIDeviceID(pci string) (string, error) {
	return s.readHex(filepath.Join(s.Root, "bus/pci/devices", pci, "device"))
}

// NetdevPCIAddress resolves the PCI address behind a kernel network device.
// Virtual devices have no device link and return an error.
func (s Sysfs) NetdevPCIAddress(ifname string) (string, error) {
	target, err := os.Readlink(filepath.Join(s.Root, "class/net", ifname, "device"))
	if err != nil {
		return "", fmt.Errorf("read device link for %s: %w", ifname, err)
	}
	return filepath.Base(target), nil
}

func (s Sysfs) NetdevDriver(ifname string) (string, error) {
	target, err := os.Readlink(filepath.Join(s.Root, "class/net", ifname, "device/driver"))
	if err != nil {
		return "", fmt.Errorf("read driver link for %s: %w", ifname, err)
	}
	return filepath.Base(target), nil
}

// NetdevType returns the ARPHRD_* link type of a kernel network device.
func (s Sysfs) NetdevType(ifname string) (int, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, "class/net", ifname, "type"))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (s Sysfs) readHex(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(string(data)), "0x"), nil
}
