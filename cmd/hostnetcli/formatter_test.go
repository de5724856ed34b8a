package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string   `json:"name"`
	Types []string `json:"network_types,omitempty"`
	MTU   int      `json:"mtu"`
}

func TestFormatTable(t *testing.T) {
	out, err := NewGenericFormatter().Format([]row{
		{Name: "bond0", Types: []string{"mgmt", "infra"}, MTU: 1500},
		{Name: "eth0", MTU: 9000},
	}, FormatCLI)
	require.NoError(t, err)

	want := "NAME   NETWORK_TYPES  MTU\n" +
		"bond0  mgmt,infra     1500\n" +
		"eth0   -              9000\n"
	assert.Equal(t, want, out)
}

func TestFormatTreeSortsKeys(t *testing.T) {
	out, err := NewGenericFormatter().Format(map[string]any{
		"b": 2,
		"a": map[string]string{"z": "1", "y": "2"},
	}, FormatCLI)
	require.NoError(t, err)
	assert.Equal(t, "a:\n  y: 2\n  z: 1\nb: 2\n", out)
}

func TestFormatOther(t *testing.T) {
	f := NewGenericFormatter()

	out, err := f.Format(row{Name: "eth0", MTU: 1500}, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"eth0","mtu":1500}`, out)

	out, err = f.Format(map[string]int{"mtu": 1500}, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "mtu: 1500\n", out)

	out, err = f.Format([]row{}, FormatCLI)
	require.NoError(t, err)
	assert.Equal(t, "No data\n", out)

	_, err = f.Format(nil, "xml")
	assert.Error(t, err)
}
