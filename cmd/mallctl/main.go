package main

import (
	"os"

	"github.com/jrsteele09/go-mall-client/internal/cli"
)

// Set at build time with -ldflags "-X main.version=..."
var (
	version   = ""
	commit    = ""
	buildTime = ""
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	os.Exit(cli.Run(os.Args[1:]))
}
