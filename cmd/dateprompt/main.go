package main

import (
	"os"

	"github.com/MikeBiancalana/dateprompt/internal/cli"
)

// Version is set at build time
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
