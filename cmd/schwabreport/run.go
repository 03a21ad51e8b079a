package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "fetch all accounts and write the reports once" }
func (*runCmd) Usage() string {
	return `schwabreport run

  Fetches every account with its positions and writes
  account_data_with_positions.csv, account_data_with_positions.xlsx and
  account_data_with_positions_v2.xlsx to OUTPUT_DIR.
`
}

func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (*runCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, log := setup()

	runner, err := newRunner(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}

	if _, err := runner.RunOnce(ctx); err != nil {
		log.Fatal().Err(err).Msg("Report run failed")
	}
	return subcommands.ExitSuccess
}
