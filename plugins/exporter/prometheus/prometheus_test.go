package prometheus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veesix-networks/hostnet/internal/fixtures"
	"github.com/veesix-networks/hostnet/pkg/component"
	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/events/local"
	"github.com/veesix-networks/hostnet/pkg/inventory/file"
	"github.com/veesix-networks/hostnet/pkg/resolver"
)

func TestMetricsEndpoint(t *testing.T) {
	store, err := file.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), fixtures.Worker()))

	reg := prometheus.NewRegistry()
	res := resolver.New(resolver.WithMetrics(resolver.NewMetrics(reg)))
	_, err = res.Resolve(context.Background(), fixtures.Worker())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Exporter.Enabled = true

	comp, err := New(component.Dependencies{Config: cfg, Inventory: store, Resolver: res, Metrics: reg})
	require.NoError(t, err)

	srv := httptest.NewServer(comp.(*Component).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, `hostnet_resolver_resolutions_total{outcome="success"} 1`)
	assert.Contains(t, out, "hostnet_inventory_hosts 1")
	assert.Contains(t, out, `hostnet_resolver_resources{family="platform::interfaces::network_config",host="compute-0"} 11`)
	assert.Contains(t, out, "hostnet_build_info")
}

func TestDisabled(t *testing.T) {
	comp, err := New(component.Dependencies{Config: config.Default()})
	require.NoError(t, err)
	assert.Nil(t, comp)
}

func TestEventMetrics(t *testing.T) {
	bus := local.NewBus()
	defer bus.Close()

	cfg := config.Default()
	cfg.Exporter.Enabled = true

	comp, err := New(component.Dependencies{Config: cfg, Events: bus})
	require.NoError(t, err)
	exporter := comp.(*Component)

	bus.Publish(events.TopicInventoryUpdated, events.Event{})
	bus.Publish(events.TopicHostResolved, events.Event{})

	count := func() float64 {
		families, err := exporter.registry.Gather()
		require.NoError(t, err)
		total := 0.0
		for _, mf := range families {
			if mf.GetName() == "hostnet_events_total" {
				for _, m := range mf.GetMetric() {
					total += m.GetCounter().GetValue()
				}
			}
		}
		return total
	}
	require.Eventually(t, func() bool { return count() == 2 }, time.Second, 5*time.Millisecond)

	srv := httptest.NewServer(exporter.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `hostnet_events_total{topic="hostnet:events:inventory:updated"} 1`)
	assert.Contains(t, string(body), "hostnet_events_published_total 2")

	require.NoError(t, exporter.Stop(context.Background()))
}
