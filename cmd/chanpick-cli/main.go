package main

import (
	"github.com/alecthomas/kong"

	"yashubustudio/chanpick/internal/rootcmd"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type CLI struct {
	rootcmd.Globals

	Select     selectCmd     `cmd:"" help:"Run one selection iteration"`
	Run        runCmd        `cmd:"" help:"Run several iterations and draw the cumulative chart"`
	Plot       plotCmd       `cmd:"" help:"Draw the current state without selecting"`
	Exclusions exclusionsCmd `cmd:"" help:"Inspect or reset the exclusion list"`
	Version    versionCmd    `cmd:"" help:"Print the version"`
}

func main() {
	cli := &CLI{}
	rootcmd.Run(cli, "chanpick-cli",
		"Pick the lowest-score channel for a configuration and track the exclusion list",
		kong.Bind(&cli.Globals),
	)
}
