package prometheus

import "github.com/veesix-networks/hostnet/pkg/component"

const Namespace = "exporter.prometheus"

func init() {
	component.Register(Namespace, New)
}
