package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/veesix-networks/hostnet/cmd/hostnetcli/commands/all"
	"github.com/veesix-networks/hostnet/plugins/northbound/api"
)

var serverAddr = flag.String("server", "localhost:8080", "hostnetd API address")

func main() {
	flag.Parse()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	client := api.NewClient(*serverAddr)
	cli := NewCLI(client, os.Stdout)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cli.Stop()
		os.Exit(0)
	}()

	if err := cli.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
