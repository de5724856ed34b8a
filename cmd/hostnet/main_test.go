package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/internal/fixtures"
	"github.com/veesix-networks/hostnet/pkg/hieradata"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagConfig, flagInventoryDriver, flagInventoryPath, flagLogLevel = "", "", "", "error"
	flagOutput, flagSnapshot, flagAll = "yaml", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeYAML(t *testing.T, path string, v any) {
	t.Helper()
	data, err := yaml.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestImportAndResolve(t *testing.T) {
	dir := t.TempDir()
	inv := filepath.Join(dir, "inventory")
	snapPath := filepath.Join(dir, "controller-0.yaml")
	writeYAML(t, snapPath, fixtures.Controller())

	out, err := run(t, "import", "--inventory-driver", "file", "--inventory", inv, snapPath)
	require.NoError(t, err)
	assert.Equal(t, "imported controller-0\n", out)

	out, err = run(t, "hosts", "--inventory-driver", "file", "--inventory", inv)
	require.NoError(t, err)
	assert.Equal(t, "controller-0\n", out)

	out, err = run(t, "resolve", "controller-0", "--inventory-driver", "file", "--inventory", inv)
	require.NoError(t, err)

	cfg, err := hieradata.Parse(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Contains(t, cfg.NetworkConfig, "bond0")
	assert.Contains(t, cfg.NetworkConfig, "lo")

	_, err = run(t, "resolve", "controller-1", "--inventory-driver", "file", "--inventory", inv)
	assert.Error(t, err)
}

func TestResolveSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "compute-0.yaml")
	writeYAML(t, snapPath, fixtures.Worker())

	out, err := run(t, "resolve", "--snapshot", snapPath)
	require.NoError(t, err)

	cfg, err := hieradata.Parse(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Mlx4CoreOptions)
	assert.NotEmpty(t, cfg.InfraClientID)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.yaml")
	newPath := filepath.Join(dir, "new.yaml")

	snapPath := writeSnapshot(t, dir)
	out, err := run(t, "resolve", "--snapshot", snapPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(oldPath, []byte(out), 0644))

	snap := fixtures.Controller()
	snap.Routes = nil
	writeYAML(t, snapPath, snap)
	out, err = run(t, "resolve", "--snapshot", snapPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(newPath, []byte(out), 0644))

	out, err = run(t, "diff", oldPath, oldPath)
	require.NoError(t, err)
	assert.Equal(t, "No changes\n", out)

	out, err = run(t, "diff", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.Contains(t, out, "route_config")
}

func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "controller-0.yaml")
	writeYAML(t, path, fixtures.Controller())
	return path
}

func TestUnknownOutputFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "resolve", "--snapshot", writeSnapshot(t, dir), "-o", "xml")
	assert.Error(t, err)
}
