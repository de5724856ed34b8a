package netconfig

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/hostnet/internal/fixtures"
	"github.com/veesix-networks/hostnet/pkg/classify"
	"github.com/veesix-networks/hostnet/pkg/ifmgr"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

func newClassifier(t *testing.T, snap *topology.Snapshot) *classify.Classifier {
	t.Helper()
	idx, err := ifmgr.Build(snap)
	require.NoError(t, err)
	return classify.New(idx)
}

func mustInterface(t *testing.T, c *classify.Classifier, name string) *topology.Interface {
	t.Helper()
	iface, ok := c.Index().Interface(name)
	require.True(t, ok, "interface %s not indexed", name)
	return iface
}

func TestGenerateBridgedDataInterface(t *testing.T) {
	c := newClassifier(t, fixtures.Worker())
	eth2 := mustInterface(t, c, "eth2")

	require.True(t, c.NeedsConfig(eth2))

	res, err := Generate(c, eth2)
	require.NoError(t, err)

	want := &Resources{
		Interfaces: []*NetworkConfig{
			{
				Ifname: "enp0s9", Ensure: "present", Family: "inet", Method: "manual",
				Hotplug: "false", OnBoot: "true", MTU: "1600",
				Options: map[string]string{"LINKDELAY": "20", "BRIDGE": "br-enp0s9"},
			},
			{
				Ifname: "enp0s9-avp", Ensure: "present", Family: "inet", Method: "manual",
				Hotplug: "false", OnBoot: "true", MTU: "1600",
				Options: map[string]string{"LINKDELAY": "20", "BRIDGE": "br-enp0s9"},
			},
			{
				Ifname: "br-enp0s9", Ensure: "present", Family: "inet", Method: "manual",
				Hotplug: "false", OnBoot: "true",
				Options: map[string]string{"TYPE": "Bridge"},
			},
		},
		Routes: []*RouteConfig{
			{
				Name: "10.50.0.0/24", Ensure: "present", Gateway: "10.50.0.1",
				Interface: "enp0s9", Netmask: "255.255.255.0", Network: "10.50.0.0",
				Options: "metric 1",
			},
		},
	}

	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Generate(eth2) mismatch (-want +got):\n%s", diff)
	}

	res.Interfaces[1].Options["extra"] = "x"
	assert.NotContains(t, res.Interfaces[0].Options, "extra", "avp clone shares options with the physical interface")
}

func TestGenerateBond(t *testing.T) {
	c := newClassifier(t, fixtures.Controller())

	cfg, err := Interface(c, mustInterface(t, c, "bond0"))
	require.NoError(t, err)

	assert.Equal(t, "bond0", cfg.Ifname)
	assert.Equal(t, "manual", cfg.Method)
	assert.Equal(t, "9000", cfg.MTU)
	assert.Equal(t, map[string]string{
		"MACADDR":      "08:00:27:aa:bb:cc",
		"BONDING_OPTS": "mode=802.3ad lacp_rate=fast xmit_hash_policy=layer2 miimon=100",
		"up":           "sleep 10",
	}, cfg.Options)
}

func TestBondingOptions(t *testing.T) {
	tests := []struct {
		mode   string
		policy string
		want   string
		ok     bool
	}{
		{"active_backup", "layer2", "mode=active-backup miimon=100", true},
		{"active-backup", "layer2", "mode=active-backup miimon=100", true},
		{"active_standby", "", "mode=active-backup miimon=100", true},
		{"balanced", "layer3+4", "mode=balance-xor xmit_hash_policy=layer3+4 miimon=100", true},
		{"balanced-xor", "layer2", "mode=balance-xor xmit_hash_policy=layer2 miimon=100", true},
		{"802.3ad", "layer2", "mode=802.3ad lacp_rate=fast xmit_hash_policy=layer2 miimon=100", true},
		{"round-robin", "layer2", "", false},
	}

	for _, tt := range tests {
		got, ok := BondingOptions(tt.mode, tt.policy)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BondingOptions(%q, %q) = %q, %v; want %q, %v", tt.mode, tt.policy, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGenerateUnknownBondModeHasNoSleep(t *testing.T) {
	snap := fixtures.Controller()
	snap.Interfaces[3].AEMode = "round-robin"
	c := newClassifier(t, snap)

	cfg, err := Interface(c, mustInterface(t, c, "bond0"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"MACADDR": "08:00:27:aa:bb:cc"}, cfg.Options)
}

func TestGenerateVLANAndSlave(t *testing.T) {
	c := newClassifier(t, fixtures.Controller())

	vlan, err := Interface(c, mustInterface(t, c, "vlan100"))
	require.NoError(t, err)
	assert.Equal(t, "bond0.100", vlan.Ifname)
	assert.Equal(t, "static", vlan.Method)
	assert.Equal(t, "192.168.204.3", vlan.IPAddress)
	assert.Equal(t, "255.255.255.0", vlan.Netmask)
	assert.Empty(t, vlan.Gateway)
	assert.Equal(t, map[string]string{
		"VLAN":    "yes",
		"pre_up":  "/sbin/modprobe -q 8021q",
		"post_up": "/usr/local/bin/cgcs_tc_setup.sh bond0.100 mgmt 1000 > /dev/null",
	}, vlan.Options)

	slave, err := Interface(c, mustInterface(t, c, "eth1"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"LINKDELAY": "20",
		"SLAVE":     "yes",
		"MASTER":    "bond0",
		"PROMISC":   "yes",
	}, slave.Options)

	oam, err := Interface(c, mustInterface(t, c, "eth3"))
	require.NoError(t, err)
	assert.Equal(t, "10.10.10.1", oam.Gateway)
}

func TestGeneratePCIInterfaces(t *testing.T) {
	c := newClassifier(t, fixtures.Worker())

	tests := []struct {
		name   string
		preUp  string
		hasPre bool
	}{
		{"eth4", "", false},
		{"eth6", "echo 0 > /sys/class/net/enp6s0/device/sriov_numvfs; echo 8 > /sys/class/net/enp6s0/device/sriov_numvfs", true},
		{"eth7", "if [ -f  /sys/class/net/enp7s0/device/sriov_numvfs ]; then echo 0 > /sys/class/net/enp7s0/device/sriov_numvfs; fi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Interface(c, mustInterface(t, c, tt.name))
			require.NoError(t, err)
			assert.Equal(t, "manual", cfg.Method)
			assert.Equal(t, "20", cfg.Options["LINKDELAY"])

			preUp, ok := cfg.Options["pre_up"]
			assert.Equal(t, tt.hasPre, ok)
			assert.Equal(t, tt.preUp, preUp)
		})
	}
}

func TestGenerateStaticWithoutAddress(t *testing.T) {
	tests := []struct {
		name        string
		networkType string
		wantErr     bool
	}{
		{"control is address-less", topology.NetworkTypeControl, false},
		{"mgmt is fatal", topology.NetworkTypeMgmt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fixtures.Controller()
			snap.Interfaces[4].NetworkTypes = []string{tt.networkType}
			snap.Addresses = snap.Addresses[:1]
			c := newClassifier(t, snap)

			cfg, err := Interface(c, mustInterface(t, c, "vlan100"))
			if tt.wantErr {
				var missing *MissingAddressError
				require.True(t, errors.As(err, &missing), "error %v is not a MissingAddressError", err)
				assert.Equal(t, "vlan100", missing.Interface)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "static", cfg.Method)
			assert.Empty(t, cfg.IPAddress)
			assert.Empty(t, cfg.Netmask)
		})
	}
}

func TestRoutesMostSpecificFirst(t *testing.T) {
	c := newClassifier(t, fixtures.Controller())

	res, err := Generate(c, mustInterface(t, c, "eth3"))
	require.NoError(t, err)
	require.Len(t, res.Routes, 3)

	var names []string
	for _, r := range res.Routes {
		names = append(names, r.Name)
		assert.Equal(t, "enp0s10", r.Interface)
	}
	assert.Equal(t, []string{"10.20.30.0/24", "10.20.0.0/16", "default"}, names)

	def := res.Routes[2]
	assert.Equal(t, "0.0.0.0", def.Netmask)
	assert.Equal(t, "default", def.Network)
	assert.Equal(t, "10.10.10.1", def.Gateway)
	assert.Equal(t, "metric 1", def.Options)

	assert.Equal(t, "255.255.0.0", res.Routes[1].Netmask)
}

func TestRouteIPv6Netmask(t *testing.T) {
	rc, err := Route(topology.Route{
		Interface: "eth3", Network: "fd00:1::", Prefix: 64, Gateway: "fd00::1", Metric: 1,
	}, "enp0s10")
	require.NoError(t, err)

	assert.Equal(t, "fd00:1::/64", rc.Name)
	assert.Equal(t, "ffff:ffff:ffff:ffff::", rc.Netmask)
	assert.Equal(t, "fd00:1::", rc.Network)
}

func TestLoopback(t *testing.T) {
	lo := Loopback()
	assert.Equal(t, "lo", lo.Ifname)
	assert.Equal(t, "loopback", lo.Method)
	assert.Equal(t, "inet", lo.Family)
	assert.Empty(t, lo.MTU)
	assert.Empty(t, lo.Options)
}
