package main

import (
	"github.com/spf13/cobra"

	"github.com/veesix-networks/hostnet/pkg/discover"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/nic"
)

var (
	flagNetns    string
	flagSysfs    string
	flagHostname string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Print a snapshot skeleton from the local ports",
	Long: `Discover lists the physical ethernet ports of this machine through netlink
and sysfs and prints them as a snapshot that can be completed and imported.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&flagNetns, "netns", "", "Named network namespace to inspect")
	discoverCmd.Flags().StringVar(&flagSysfs, "sysfs", nic.DefaultSysfs.Root, "sysfs mount point")
	discoverCmd.Flags().StringVar(&flagHostname, "hostname", "", "Hostname to put in the snapshot")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	res, err := discover.Ports(cmd.Context(), discover.Options{
		Namespace: flagNetns,
		Sysfs:     nic.Sysfs{Root: flagSysfs},
	})
	if err != nil {
		return err
	}

	snap := &topology.Snapshot{
		Host:       topology.Host{Hostname: flagHostname},
		Ports:      res.Ports,
		Interfaces: res.Interfaces,
	}
	return writeValue(cmd.OutOrStdout(), snap)
}
