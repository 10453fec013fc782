package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Run        RunCmd           `cmd:"" default:"withargs" help:"Play a round-robin tournament"`
	Simulate   SimulateCmd      `cmd:"" help:"Evaluate one strategy over many independent matches"`
	Strategies StrategiesCmd    `cmd:"" help:"List the built-in strategies"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dilemma"),
		kong.Description("Iterated prisoner's dilemma round-robin tournaments"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
