package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/stevecalla/Schwabdev/internal/scheduler"
)

type scheduleCmd struct {
	spec string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "write the reports on a cron schedule" }
func (*scheduleCmd) Usage() string {
	return `schwabreport schedule [-cron <spec>]

  Runs once immediately, then on every tick of the cron spec (seconds
  field first) until interrupted. Defaults to REPORT_SCHEDULE.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "cron", "", "Cron spec with seconds, e.g. \"0 0 18 * * MON-FRI\"")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, log := setup()

	spec := c.spec
	if spec == "" {
		spec = cfg.Schedule
	}

	runner, err := newRunner(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(spec, runner); err != nil {
		log.Fatal().Err(err).Str("schedule", spec).Msg("Invalid schedule")
	}

	if err := sched.RunNow(runner); err != nil {
		log.Error().Err(err).Msg("Initial report run failed")
	}

	sched.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	sched.Stop()
	return subcommands.ExitSuccess
}
