// Package main is the entry point of the Schwab account report generator.
// It fetches every linked brokerage account with its positions and writes
// the full and summary reports to the output directory.
//
//	schwabreport [run]              one report run (default)
//	schwabreport schedule [-cron]   report runs on a cron schedule
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&runCmd{}, "")
	commander.Register(&scheduleCmd{}, "")

	flag.Parse()
	ctx := context.Background()

	// A bare invocation performs a single run.
	if flag.NArg() == 0 {
		os.Exit(int((&runCmd{}).Execute(ctx, flag.CommandLine)))
	}
	os.Exit(int(commander.Execute(ctx)))
}
