package nic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupVendor(t *testing.T) {
	tests := []struct {
		id       string
		want     string
		strategy BindStrategy
	}{
		{"15b3", "Mellanox", BindStrategyBifurcated},
		{"0x8086", "Intel", BindStrategyVFIO},
		{"1af4", "Generic", BindStrategyKernel},
	}

	for _, tt := range tests {
		v := LookupVendor(tt.id)
		if v.Name() != tt.want {
			t.Errorf("LookupVendor(%q) = %s, want %s", tt.id, v.Name(), tt.want)
		}
		if v.BindStrategy() != tt.strategy {
			t.Errorf("LookupVendor(%q).BindStrategy() = %s, want %s", tt.id, v.BindStrategy(), tt.strategy)
		}
	}
}

func TestMellanoxDrivers(t *testing.T) {
	assert.True(t, IsMellanoxDriver(DriverMlx4Core))
	assert.True(t, IsMellanoxDriver(DriverMlx5Core))
	assert.False(t, IsMellanoxDriver("ixgbe"))
	assert.True(t, IsMellanoxCX3Driver(DriverMlx4Core))
	assert.False(t, IsMellanoxCX3Driver(DriverMlx5Core))
}

func TestSysfsNetdev(t *testing.T) {
	root := t.TempDir()
	pci := "0000:03:00.0"

	devDir := filepath.Join(root, "bus/pci/devices", pci)
	drvDir := filepath.Join(root, "bus/pci/drivers/mlx5_core")
	netDir := filepath.Join(root, "class/net/enp3s0f0")
	for _, d := range []string{devDir, drvDir, netDir} {
		require.NoError(t, os.MkdirAll(d, 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(devDir, "vendor"), []byte("0x15b3\n"), 0644))
	require.NoError(t, os.Symlink(drvDir, filepath.Join(devDir, "driver")))
	require.NoError(t, os.Symlink(devDir, filepath.Join(netDir, "device")))

	fs := Sysfs{Root: root}

	addr, err := fs.NetdevPCIAddress("enp3s0f0")
	require.NoError(t, err)
	assert.Equal(t, pci, addr)

	driver, err := fs.NetdevDriver("enp3s0f0")
	require.NoError(t, err)
	assert.Equal(t, DriverMlx5Core, driver)

	vendor, err := fs.DetectVendor(pci)
	require.NoError(t, err)
	assert.Equal(t, "Mellanox", vendor.Name())
	assert.True(t, vendor.BindStrategy().DPDKCapable())

	_, err = fs.NetdevPCIAddress("lo")
	assert.Error(t, err)
}
