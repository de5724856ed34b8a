package hieradata

import (
	"fmt"
	"slices"
	"strings"
)

type DiffResult struct {
	Added    []Line
	Deleted  []Line
	Modified []Line
}

type Line struct {
	Path  string
	Value string
}

func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Deleted) == 0 && len(d.Modified) == 0
}

// Diff compares two resource maps attribute by attribute.
func Diff(old, new *Config) *DiffResult {
	before := flatten(old)
	after := flatten(new)

	result := &DiffResult{}
	for _, path := range sortedKeys(after) {
		oldValue, existed := before[path]
		switch {
		case !existed:
			result.Added = append(result.Added, Line{Path: path, Value: after[path]})
		case oldValue != after[path]:
			result.Modified = append(result.Modified, Line{Path: path, Value: after[path]})
		}
	}
	for _, path := range sortedKeys(before) {
		if _, ok := after[path]; !ok {
			result.Deleted = append(result.Deleted, Line{Path: path, Value: before[path]})
		}
	}
	return result
}

func FormatDiff(result *DiffResult) string {
	var sb strings.Builder

	if len(result.Added) > 0 {
		sb.WriteString("Added:\n")
		for _, line := range result.Added {
			sb.WriteString(fmt.Sprintf("  + %s = %s\n", line.Path, line.Value))
		}
	}

	if len(result.Modified) > 0 {
		sb.WriteString("Modified:\n")
		for _, line := range result.Modified {
			sb.WriteString(fmt.Sprintf("  ~ %s = %s\n", line.Path, line.Value))
		}
	}

	if len(result.Deleted) > 0 {
		sb.WriteString("Deleted:\n")
		for _, line := range result.Deleted {
			sb.WriteString(fmt.Sprintf("  - %s = %s\n", line.Path, line.Value))
		}
	}

	if result.Empty() {
		sb.WriteString("No changes\n")
	}

	return sb.String()
}

func flatten(cfg *Config) map[string]string {
	out := make(map[string]string)
	if cfg == nil {
		return out
	}

	for name, nc := range cfg.NetworkConfig {
		prefix := NetworkConfigResource + "." + name + "."
		out[prefix+"ensure"] = nc.Ensure
		out[prefix+"family"] = nc.Family
		out[prefix+"method"] = nc.Method
		out[prefix+"hotplug"] = nc.Hotplug
		out[prefix+"onboot"] = nc.OnBoot
		setIf(out, prefix+"mtu", nc.MTU)
		setIf(out, prefix+"ipaddress", nc.IPAddress)
		setIf(out, prefix+"netmask", nc.Netmask)
		setIf(out, prefix+"gateway", nc.Gateway)
		for k, v := range nc.Options {
			out[prefix+"options."+k] = v
		}
	}

	for name, rc := range cfg.RouteConfig {
		prefix := RouteConfigResource + "." + name + "."
		out[prefix+"ensure"] = rc.Ensure
		out[prefix+"gateway"] = rc.Gateway
		out[prefix+"interface"] = rc.Interface
		out[prefix+"netmask"] = rc.Netmask
		out[prefix+"network"] = rc.Network
		out[prefix+"options"] = rc.Options
	}

	for networkType, ac := range cfg.AddressConfig {
		prefix := AddressConfigResource + "." + networkType + "."
		out[prefix+"ifname"] = ac.Ifname
		out[prefix+"address"] = ac.Address
	}

	setIf(out, Mlx4CoreOptionsResource, cfg.Mlx4CoreOptions)
	setIf(out, InfraClientIDResource, cfg.InfraClientID)
	return out
}

func setIf(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
