package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/internal/fixtures"
	"github.com/veesix-networks/hostnet/pkg/component"
	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/inventory/file"
	"github.com/veesix-networks/hostnet/pkg/resolver"
	"github.com/veesix-networks/hostnet/plugins/northbound/api"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()

	store, err := file.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), fixtures.Controller()))

	cfg := config.Default()
	cfg.API.Enabled = true

	comp, err := api.NewComponent(component.Dependencies{
		Config:    cfg,
		Inventory: store,
		Resolver:  resolver.New(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(comp.(*api.Component).Handler())
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	return NewCLI(api.NewClient(srv.URL), &out), &out
}

func TestCLICommands(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.processCommand("show hosts"))
	assert.Equal(t, "HOSTNAME\ncontroller-0\n", out.String())

	out.Reset()
	require.NoError(t, c.processCommand("show interfaces controller-0"))
	assert.Contains(t, out.String(), "OS_NAME")
	assert.Contains(t, out.String(), "bond0")

	out.Reset()
	require.NoError(t, c.processCommand("show resolve controller-0 | yaml"))
	assert.Contains(t, out.String(), "bond0")

	assert.Error(t, c.processCommand("show resolve controller-9"))

	out.Reset()
	require.NoError(t, c.processCommand("show ?"))
	assert.Contains(t, out.String(), "resolve")

	require.NoError(t, c.processCommand("exit"))
	assert.False(t, c.running)
}

func TestCLIInventory(t *testing.T) {
	c, out := newTestCLI(t)

	data, err := yaml.Marshal(fixtures.Worker())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "compute-0.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	require.NoError(t, c.processCommand("inventory put "+path))
	assert.Equal(t, "Stored compute-0\n", out.String())

	out.Reset()
	require.NoError(t, c.processCommand("resolve snapshot "+path+" | json"))
	assert.Contains(t, out.String(), `"platform::networking::mlx4_core_options"`)

	out.Reset()
	require.NoError(t, c.processCommand("show hosts"))
	assert.Equal(t, "HOSTNAME\ncompute-0\ncontroller-0\n", out.String())

	out.Reset()
	require.NoError(t, c.processCommand("inventory delete compute-0"))
	assert.Equal(t, "Deleted compute-0\n", out.String())

	assert.Error(t, c.processCommand("inventory delete compute-0"))
	assert.EqualError(t, c.processCommand("inventory put"), "path required")
}
