package all

import (
	_ "github.com/veesix-networks/hostnet/cmd/hostnetcli/commands/inventory"
	_ "github.com/veesix-networks/hostnet/cmd/hostnetcli/commands/resolve"
	_ "github.com/veesix-networks/hostnet/cmd/hostnetcli/commands/show"
)
