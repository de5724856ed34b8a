package nic

// Generic covers devices without a poll mode driver; they stay on the kernel
// stack and get bridged into the vswitch.
type Generic struct{}

func (g Generic) Name() string { return "Generic" }

func (g Generic) Match(vendorID string) bool {
	return true
}

func (g Generic) BindStrategy() BindStrategy {
	return BindStrategyKernel
}
