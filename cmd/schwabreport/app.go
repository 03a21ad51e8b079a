package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/stevecalla/Schwabdev/internal/clients/schwab"
	"github.com/stevecalla/Schwabdev/internal/config"
	"github.com/stevecalla/Schwabdev/internal/modules/reports"
	"github.com/stevecalla/Schwabdev/internal/pipeline"
	"github.com/stevecalla/Schwabdev/internal/reliability"
	"github.com/stevecalla/Schwabdev/pkg/logger"
)

// setup loads the configuration and builds the logger. A configuration
// error ends the process.
func setup() (*config.Config, zerolog.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
			Out:    os.Stderr,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Stdout carries the report outcome lines.
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Out:    os.Stderr,
	})
	logger.SetGlobalLogger(log)
	return cfg, log
}

// newRunner wires the API client, the report writer and the optional
// publisher into a pipeline runner.
func newRunner(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pipeline.Runner, error) {
	client, err := schwab.NewClient(cfg.AppKey, cfg.AppSecret, cfg.RefreshToken, schwab.Options{
		BaseURL:  cfg.BaseURL,
		TokenURL: cfg.TokenURL,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	reporter := reports.NewReporter(cfg.OutputDir, os.Stdout, log)

	var store reliability.ObjectStore
	if cfg.R2.Enabled() {
		r2, err := reliability.NewR2Client(ctx, cfg.R2.AccountID, cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.Bucket, log)
		if err != nil {
			return nil, err
		}
		store = r2
		log.Info().Str("bucket", cfg.R2.Bucket).Str("prefix", cfg.R2.Prefix).Msg("Report publishing enabled")
	}
	publisher := reliability.NewReportPublisher(store, cfg.R2.Prefix, cfg.R2.RetentionDays, log)

	return pipeline.NewRunner(client, reporter, publisher, log), nil
}
