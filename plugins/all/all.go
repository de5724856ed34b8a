// Package all registers every built-in plugin component.
package all

import (
	_ "github.com/veesix-networks/hostnet/plugins/exporter/prometheus"
	_ "github.com/veesix-networks/hostnet/plugins/northbound/api"
)
