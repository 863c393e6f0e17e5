package main

import (
	"os"

	"github.com/robbyt/go-princeofversions/internal/cli"
)

// set by the build
var version string

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
