package nic

const (
	DriverMlx4Core = "mlx4_core"
	DriverMlx5Core = "mlx5_core"
)

type Mellanox struct{}

func (m Mellanox) Name() string { return "Mellanox" }

func (m Mellanox) Match(vendorID string) bool {
	return vendorID == "15b3"
}

func (m Mellanox) BindStrategy() BindStrategy {
	return BindStrategyBifurcated
}

// IsMellanoxDriver reports whether driver is a ConnectX-3 or ConnectX-4 core driver.
func IsMellanoxDriver(driver string) bool {
	return driver == DriverMlx4Core || driver == DriverMlx5Core
}

// IsMellanoxCX3Driver is true only for mlx4_core. CX3 devices enable VFs
// through module options rather than sriov_numvfs.
func IsMellanoxCX3Driver(driver string) bool {
	return driver == DriverMlx4Core
}
