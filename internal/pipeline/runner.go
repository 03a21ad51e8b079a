// Package pipeline runs one report cycle: fetch, flatten, enrich, write,
// publish.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stevecalla/Schwabdev/internal/clients/schwab"
	"github.com/stevecalla/Schwabdev/internal/domain"
	"github.com/stevecalla/Schwabdev/internal/modules/positions"
)

// AccountSource fetches every account with its positions.
type AccountSource interface {
	AccountDetailsAll(ctx context.Context, fields ...string) ([]domain.AccountRecord, error)
}

// ReportWriter writes the report files and returns their paths.
type ReportWriter interface {
	WriteAll(flat []domain.FlatRow, enriched []domain.EnrichedRow) []string
}

// Publisher copies written reports elsewhere and returns where they went.
type Publisher interface {
	Publish(ctx context.Context, paths []string) []string
}

// Result describes a completed run.
type Result struct {
	RunID     string
	Totals    positions.Totals
	Files     []string
	Published []string
}

// Runner executes report runs. It satisfies scheduler.Job.
type Runner struct {
	source    AccountSource
	reporter  ReportWriter
	publisher Publisher
	log       zerolog.Logger
}

// NewRunner creates a runner. publisher may be nil.
func NewRunner(source AccountSource, reporter ReportWriter, publisher Publisher, log zerolog.Logger) *Runner {
	return &Runner{
		source:    source,
		reporter:  reporter,
		publisher: publisher,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// Name identifies the runner as a scheduled job.
func (r *Runner) Name() string {
	return "account_report"
}

// Run executes one cycle and discards the result.
func (r *Runner) Run(ctx context.Context) error {
	_, err := r.RunOnce(ctx)
	return err
}

// RunOnce fetches all accounts and writes both reports. Each stage consumes
// the complete output of the previous one. Fetch and flatten failures end
// the run with an error; report failures are reported by the writer and do
// not.
func (r *Runner) RunOnce(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := r.log.With().Str("run_id", runID).Logger()
	log.Info().Msg("Starting report run")
	startTime := time.Now()

	accounts, err := r.source.AccountDetailsAll(ctx, schwab.FieldPositions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account details: %w", err)
	}

	flat, err := positions.Flatten(accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten accounts: %w", err)
	}
	log.Debug().Int("accounts", len(accounts)).Int("rows", len(flat)).Msg("Flattened positions")

	enriched := positions.EnrichAll(flat)

	totals := positions.Summarize(enriched)
	log.Info().
		Int("accounts", totals.Accounts).
		Int("positions", totals.Positions).
		Float64("market_value", totals.MarketValue).
		Float64("total_cost", totals.TotalCost).
		Float64("unrealized_gain", totals.UnrealizedGain()).
		Float64("current_day_pl", totals.CurrentDayProfitLoss).
		Msg("Portfolio totals")

	files := r.reporter.WriteAll(flat, enriched)

	var published []string
	if r.publisher != nil {
		published = r.publisher.Publish(ctx, files)
	}

	log.Info().
		Int("files", len(files)).
		Int("published", len(published)).
		Dur("duration_ms", time.Since(startTime)).
		Msg("Report run completed")

	return &Result{
		RunID:     runID,
		Totals:    totals,
		Files:     files,
		Published: published,
	}, nil
}
