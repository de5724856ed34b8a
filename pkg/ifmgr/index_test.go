package ifmgr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/hostnet/internal/fixtures"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

func TestBuildRoutesMostSpecificFirst(t *testing.T) {
	idx, err := Build(fixtures.Controller())
	require.NoError(t, err)

	routes := idx.Routes["eth3"]
	require.Len(t, routes, 3)

	prefixes := []int{routes[0].Prefix, routes[1].Prefix, routes[2].Prefix}
	assert.Equal(t, []int{24, 16, 0}, prefixes)
}

func TestBuildLinksUsedBy(t *testing.T) {
	snap := fixtures.Controller()
	for i := range snap.Interfaces {
		snap.Interfaces[i].UsedBy = nil
	}

	idx, err := Build(snap)
	require.NoError(t, err)

	bond, _ := idx.Interface("bond0")
	assert.Equal(t, []string{"vlan100", "vlan101"}, bond.UsedBy)

	eth1, _ := idx.Interface("eth1")
	assert.Equal(t, []string{"bond0"}, eth1.UsedBy)

	for _, iface := range snap.Interfaces {
		assert.Nil(t, iface.UsedBy, "snapshot interface %s was modified", iface.Name)
	}
}

func TestBuildOrdered(t *testing.T) {
	idx, err := Build(fixtures.Controller())
	require.NoError(t, err)

	var names []string
	for _, iface := range idx.Ordered() {
		names = append(names, iface.Name)
	}
	assert.Equal(t, []string{"eth0", "eth1", "eth2", "eth3", "bond0", "bmc0", "vlan100", "vlan101"}, names)
}

func TestBuildBMCInterface(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*topology.Snapshot)
		wantLower string
		wantBMC   bool
	}{
		{
			name:      "prefers pxeboot",
			mutate:    func(*topology.Snapshot) {},
			wantLower: "eth0",
			wantBMC:   true,
		},
		{
			name: "falls back to mgmt",
			mutate: func(s *topology.Snapshot) {
				s.Interfaces[0].NetworkTypes = nil
			},
			wantLower: "vlan100",
			wantBMC:   true,
		},
		{
			name: "no bmc network",
			mutate: func(s *topology.Snapshot) {
				s.Networks = s.Networks[:4]
			},
		},
		{
			name: "no lower interface",
			mutate: func(s *topology.Snapshot) {
				s.Interfaces[0].NetworkTypes = nil
				s.Interfaces[4].NetworkTypes = nil
			},
		},
		{
			name: "not a controller",
			mutate: func(s *topology.Snapshot) {
				s.Host.Personality = topology.PersonalityWorker
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fixtures.Controller()
			tt.mutate(snap)

			idx, err := Build(snap)
			require.NoError(t, err)

			bmc, ok := idx.Interface(BMCInterfaceName)
			require.Equal(t, tt.wantBMC, ok)
			if !tt.wantBMC {
				assert.Empty(t, idx.Addresses[BMCInterfaceName])
				return
			}

			assert.Equal(t, topology.InterfaceTypeVLAN, bmc.Type)
			assert.Equal(t, 5, bmc.VLANID)
			assert.Equal(t, []string{tt.wantLower}, bmc.Uses)
			assert.NotEmpty(t, bmc.UUID)

			lower, _ := idx.Interface(tt.wantLower)
			assert.Contains(t, lower.UsedBy, BMCInterfaceName)

			addrs := idx.Addresses[BMCInterfaceName]
			require.Len(t, addrs, 1)
			assert.Equal(t, "192.168.5.3", addrs[0].Address)
			assert.Equal(t, topology.NetworkTypeBMC, addrs[0].NetworkType)
		})
	}
}

func TestBuildBMCUUIDStable(t *testing.T) {
	a, err := Build(fixtures.Controller())
	require.NoError(t, err)
	b, err := Build(fixtures.Controller())
	require.NoError(t, err)

	assert.Equal(t, a.Interfaces[BMCInterfaceName].UUID, b.Interfaces[BMCInterfaceName].UUID)
}

func TestBuildRejectsCycle(t *testing.T) {
	snap := fixtures.Controller()
	for i := range snap.Interfaces {
		if snap.Interfaces[i].Name == "bond0" {
			snap.Interfaces[i].Uses = append(snap.Interfaces[i].Uses, "vlan100")
		}
	}

	_, err := Build(snap)
	require.Error(t, err)

	var cycle *CycleError
	require.True(t, errors.As(err, &cycle), "error %v is not a CycleError", err)
	assert.Equal(t, cycle.Path[0], cycle.Path[len(cycle.Path)-1])
	assert.Contains(t, cycle.Path, "bond0")
	assert.Contains(t, cycle.Path, "vlan100")
}

func TestBuildRejectsUnknownLower(t *testing.T) {
	snap := fixtures.Controller()
	snap.Interfaces[4].Uses = []string{"bond9"}

	_, err := Build(snap)
	assert.ErrorIs(t, err, ErrUnknownInterface)
}

func TestBuildRejectsSecondVLANLower(t *testing.T) {
	snap := fixtures.Controller()
	for i := range snap.Interfaces {
		if snap.Interfaces[i].Name == "eth3" {
			snap.Interfaces[i].UsedBy = []string{"vlan100"}
		}
	}

	_, err := Build(snap)
	assert.ErrorIs(t, err, ErrVLANLower)
}

func TestBuildAcceptsMatchingVLANUsedBy(t *testing.T) {
	snap := fixtures.Controller()
	for i := range snap.Interfaces {
		if snap.Interfaces[i].Name == "bond0" {
			snap.Interfaces[i].UsedBy = []string{"vlan100"}
		}
	}

	idx, err := Build(snap)
	require.NoError(t, err)

	vlan, ok := idx.Interface("vlan100")
	require.True(t, ok)
	assert.Equal(t, []string{"bond0"}, vlan.Uses)
}

func TestBuildDataNetworks(t *testing.T) {
	idx, err := Build(fixtures.Worker())
	require.NoError(t, err)

	assert.Len(t, idx.DataNetworks, 2)
	assert.Equal(t, 1600, idx.Networks[topology.NetworkTypeData].MTU)
	assert.Len(t, idx.DevicesByPCI["0000:81:00.0"], 2)
}
