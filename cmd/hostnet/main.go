package main

import "github.com/veesix-networks/hostnet/pkg/version"

func main() {
	Execute(version.Version)
}
