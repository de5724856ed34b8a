package resolver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/hostnet/internal/fixtures"
	"github.com/veesix-networks/hostnet/pkg/hieradata"
	"github.com/veesix-networks/hostnet/pkg/ifmgr"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/netconfig"
)

func resolve(t *testing.T, snap *topology.Snapshot) *hieradata.Config {
	t.Helper()
	cfg, err := New().Resolve(context.Background(), snap)
	require.NoError(t, err)
	return cfg
}

func ifnames(cfg *hieradata.Config) []string {
	var names []string
	for name := range cfg.NetworkConfig {
		names = append(names, name)
	}
	return names
}

func TestResolveController(t *testing.T) {
	cfg := resolve(t, fixtures.Controller())

	assert.ElementsMatch(t, []string{
		"lo", "enp0s3", "enp0s8", "enp0s9", "bond0",
		"bond0.100", "bond0.101", "enp0s10", "enp0s3.5",
	}, ifnames(cfg))

	bond := cfg.NetworkConfig["bond0"]
	assert.Equal(t, "mode=802.3ad lacp_rate=fast xmit_hash_policy=layer2 miimon=100", bond.Options["BONDING_OPTS"])
	assert.Equal(t, "sleep 10", bond.Options["up"])
	assert.Equal(t, "08:00:27:aa:bb:cc", bond.Options["MACADDR"])

	bmc := cfg.NetworkConfig["enp0s3.5"]
	assert.Equal(t, "192.168.5.3", bmc.IPAddress)
	assert.Equal(t, "255.255.255.0", bmc.Netmask)

	assert.Equal(t, map[string]*netconfig.AddressConfig{
		topology.NetworkTypeMgmt:    {Ifname: "bond0.100", Address: "192.168.204.2/24"},
		topology.NetworkTypeOAM:     {Ifname: "enp0s10", Address: "10.10.10.2/24"},
		topology.NetworkTypePXEBoot: {Ifname: "enp0s3", Address: "169.254.202.2/24"},
	}, cfg.AddressConfig)

	assert.Empty(t, cfg.Mlx4CoreOptions)
	assert.Empty(t, cfg.InfraClientID)
}

func TestResolveWorker(t *testing.T) {
	cfg := resolve(t, fixtures.Worker())

	assert.ElementsMatch(t, []string{
		"lo", "enp0s3", "enp0s8",
		"enp0s9", "enp0s9-avp", "br-enp0s9",
		"enp3s0", "ens1f0", "ens1f1", "enp6s0", "enp7s0",
	}, ifnames(cfg))
	assert.NotContains(t, cfg.NetworkConfig, "enp8s0", "DPDK data port is owned by the vswitch")

	assert.Equal(t, "port_type_array=2,2 num_vfs=0000:81:00.0-4;0;0", cfg.Mlx4CoreOptions)
	assert.Equal(t, "63:6f:6d:70:75:74:65:2d:30:3a:69:6e:66:72:61:08:00:27:11:22:33", cfg.InfraClientID)
	assert.Contains(t, cfg.RouteConfig, "10.50.0.0/24")
}

func TestResolveInfraClientIDFromPort(t *testing.T) {
	snap := fixtures.Worker()
	snap.Interfaces[1].MAC = ""
	snap.Ports[1].MAC = "08:00:27:11:22:33"

	cfg := resolve(t, snap)
	assert.Equal(t, "63:6f:6d:70:75:74:65:2d:30:3a:69:6e:66:72:61:08:00:27:11:22:33", cfg.InfraClientID)
}

func TestResolveInfraClientIDWithoutMAC(t *testing.T) {
	tests := []struct {
		name string
		mac  string
	}{
		{"missing", ""},
		{"invalid", "not-a-mac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fixtures.Worker()
			snap.Interfaces[1].MAC = tt.mac

			cfg := resolve(t, snap)
			assert.Empty(t, cfg.InfraClientID)
			assert.Contains(t, cfg.NetworkConfig, "enp0s8")
		})
	}
}

func TestResolveBridgedDataInterface(t *testing.T) {
	cfg := resolve(t, fixtures.Worker())

	for _, name := range []string{"enp0s9", "enp0s9-avp", "br-enp0s9"} {
		assert.Contains(t, cfg.NetworkConfig, name)
	}
	assert.Equal(t, "br-enp0s9", cfg.NetworkConfig["enp0s9"].Options["BRIDGE"])
	assert.Equal(t, "Bridge", cfg.NetworkConfig["br-enp0s9"].Options["TYPE"])
	assert.Equal(t, "enp0s9", cfg.RouteConfig["10.50.0.0/24"].Interface)
}

func TestResolveRoutes(t *testing.T) {
	cfg := resolve(t, fixtures.Controller())

	require.Len(t, cfg.RouteConfig, 3)
	def := cfg.RouteConfig["default"]
	require.NotNil(t, def)
	assert.Equal(t, "0.0.0.0", def.Netmask)
	assert.Equal(t, "default", def.Network)
	assert.Equal(t, "enp0s10", def.Interface)
	assert.Equal(t, "255.255.0.0", cfg.RouteConfig["10.20.0.0/16"].Netmask)
	assert.Equal(t, "255.255.255.0", cfg.RouteConfig["10.20.30.0/24"].Netmask)
}

func TestResolveDeterministic(t *testing.T) {
	r := New()
	first, err := r.Resolve(context.Background(), fixtures.Controller())
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), fixtures.Controller())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Resolve() not deterministic (-first +second):\n%s", diff)
	}

	var a, b bytes.Buffer
	require.NoError(t, hieradata.Render(&a, first))
	require.NoError(t, hieradata.Render(&b, second))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestResolveDoesNotMutateSnapshot(t *testing.T) {
	snap := fixtures.Controller()
	resolve(t, snap)

	if diff := cmp.Diff(fixtures.Controller(), snap); diff != "" {
		t.Errorf("Resolve() modified the snapshot (-want +got):\n%s", diff)
	}
}

func TestResolvePXEBootFallsBackToMgmt(t *testing.T) {
	cfg := resolve(t, fixtures.Worker())

	require.Contains(t, cfg.AddressConfig, topology.NetworkTypePXEBoot)
	assert.Equal(t, "enp0s3", cfg.AddressConfig[topology.NetworkTypePXEBoot].Ifname)
	assert.Equal(t, cfg.AddressConfig[topology.NetworkTypeMgmt].Ifname, cfg.AddressConfig[topology.NetworkTypePXEBoot].Ifname)
}

func TestResolveStaticWithoutAddress(t *testing.T) {
	withoutMgmtAddress := func() *topology.Snapshot {
		snap := fixtures.Controller()
		addrs := snap.Addresses[:0]
		for _, a := range snap.Addresses {
			if a.Interface != "vlan100" {
				addrs = append(addrs, a)
			}
		}
		snap.Addresses = addrs
		return snap
	}

	t.Run("mgmt is fatal", func(t *testing.T) {
		_, err := New().Resolve(context.Background(), withoutMgmtAddress())
		require.Error(t, err)

		var missing *netconfig.MissingAddressError
		require.True(t, errors.As(err, &missing), "error %v", err)
		assert.Equal(t, "vlan100", missing.Interface)
		assert.Equal(t, topology.NetworkTypeMgmt, missing.NetworkType)
	})

	t.Run("control is allowed", func(t *testing.T) {
		snap := withoutMgmtAddress()
		snap.Interfaces[4].NetworkTypes = []string{topology.NetworkTypeControl}

		cfg := resolve(t, snap)
		vlan := cfg.NetworkConfig["bond0.100"]
		require.NotNil(t, vlan)
		assert.Equal(t, "static", vlan.Method)
		assert.Empty(t, vlan.IPAddress)
		assert.Empty(t, vlan.Netmask)
	})
}

func TestResolveLoopback(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		role   string
		wantLo bool
	}{
		{"duplex", topology.SystemModeDuplex, "", true},
		{"simplex", topology.SystemModeSimplex, "", false},
		{"simplex system controller", topology.SystemModeSimplex, topology.DistributedCloudSystemController, false},
		{"simplex subcloud", topology.SystemModeSimplex, topology.DistributedCloudSubcloud, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fixtures.Controller()
			snap.Platform.SystemMode = tt.mode
			snap.Platform.DistributedCloudRole = tt.role

			cfg := resolve(t, snap)
			_, ok := cfg.NetworkConfig[netconfig.LoopbackIfname]
			assert.Equal(t, tt.wantLo, ok)
		})
	}
}

func TestResolveRejectsCycle(t *testing.T) {
	snap := fixtures.Controller()
	snap.Interfaces[3].Uses = append(snap.Interfaces[3].Uses, "vlan100")

	_, err := New().Resolve(context.Background(), snap)
	var cycle *ifmgr.CycleError
	require.True(t, errors.As(err, &cycle), "error %v", err)
}

func TestResolveInvalidSnapshot(t *testing.T) {
	snap := fixtures.Worker()
	snap.Interfaces[1].Name = "eth0"

	_, err := New().Resolve(context.Background(), snap)
	var verr *topology.ValidationError
	require.True(t, errors.As(err, &verr), "error %v", err)
}

func TestResolveAll(t *testing.T) {
	broken := fixtures.Worker()
	broken.Host.Hostname = "compute-1"
	broken.Interfaces[0].Type = "bridge"

	results := New().ResolveAll(context.Background(), []*topology.Snapshot{
		fixtures.Controller(), broken, fixtures.Worker(),
	})

	require.Len(t, results, 3)
	assert.Equal(t, "controller-0", results[0].Hostname)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "compute-1", results[1].Hostname)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Config)
	assert.Equal(t, "compute-0", results[2].Hostname)
	assert.NoError(t, results[2].Err)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(WithMetrics(NewMetrics(reg)))

	_, err := r.Resolve(context.Background(), fixtures.Worker())
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), &topology.Snapshot{})
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	resources := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetName() {
			case "hostnet_resolver_resolutions_total":
				counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
			case "hostnet_resolver_resources":
				for _, l := range m.GetLabel() {
					if l.GetName() == "family" {
						resources[l.GetValue()] = m.GetGauge().GetValue()
					}
				}
			}
		}
	}

	assert.Equal(t, map[string]float64{OutcomeSuccess: 1, OutcomeError: 1}, counts)
	assert.Equal(t, float64(11), resources[hieradata.NetworkConfigResource])
	assert.Equal(t, float64(1), resources[hieradata.InfraClientIDResource])
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
