package reliability

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// dayLayout names the per-day folder reports are published under.
const dayLayout = "2006-01-02"

// minDaysToKeep published days survive rotation regardless of age.
const minDaysToKeep = 3

// ObjectStore is the subset of R2Client used by ReportPublisher.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64) error
	List(ctx context.Context, prefix string) ([]types.Object, error)
	Delete(ctx context.Context, key string) error
}

// ReportPublisher copies report files to an object store under
// {prefix}/{YYYY-MM-DD}/{filename}. A publisher without a store is disabled
// and does nothing.
type ReportPublisher struct {
	store         ObjectStore
	prefix        string
	retentionDays int
	now           func() time.Time
	log           zerolog.Logger
}

// NewReportPublisher creates a publisher. store may be nil to disable
// publishing. retentionDays of 0 keeps every published day.
func NewReportPublisher(store ObjectStore, prefix string, retentionDays int, log zerolog.Logger) *ReportPublisher {
	return &ReportPublisher{
		store:         store,
		prefix:        strings.Trim(prefix, "/"),
		retentionDays: retentionDays,
		now:           time.Now,
		log:           log.With().Str("service", "report_publisher").Logger(),
	}
}

// Enabled reports whether the publisher has a store to write to.
func (p *ReportPublisher) Enabled() bool {
	return p != nil && p.store != nil
}

// Publish uploads each file in paths and returns the keys that were written.
// Failures are logged and skipped; they never fail the run.
func (p *ReportPublisher) Publish(ctx context.Context, paths []string) []string {
	if !p.Enabled() || len(paths) == 0 {
		return nil
	}

	day := p.now().Format(dayLayout)
	startTime := time.Now()
	keys := make([]string, 0, len(paths))

	for _, filePath := range paths {
		key := p.Key(day, filePath)
		if err := p.upload(ctx, key, filePath); err != nil {
			p.log.Error().Err(err).Str("file", filePath).Str("key", key).Msg("Failed to publish report")
			continue
		}
		keys = append(keys, key)
	}

	p.log.Info().
		Int("published", len(keys)).
		Int("failed", len(paths)-len(keys)).
		Dur("duration_ms", time.Since(startTime)).
		Msg("Report publishing completed")

	if p.retentionDays > 0 {
		p.RotateOldReports(ctx)
	}
	return keys
}

// Key is the object key of a report file published on day.
func (p *ReportPublisher) Key(day, filePath string) string {
	return path.Join(p.prefix, day, filepath.Base(filePath))
}

func (p *ReportPublisher) upload(ctx context.Context, key, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	return p.store.Upload(ctx, key, file, info.Size())
}

// RotateOldReports deletes published days older than the retention period.
// The newest minDaysToKeep days are always kept.
func (p *ReportPublisher) RotateOldReports(ctx context.Context) {
	if !p.Enabled() || p.retentionDays <= 0 {
		return
	}

	listPrefix := ""
	if p.prefix != "" {
		listPrefix = p.prefix + "/"
	}
	objects, err := p.store.List(ctx, listPrefix)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to list published reports")
		return
	}

	byDay := make(map[time.Time][]string)
	for _, obj := range objects {
		if obj.Key == nil {
			continue
		}
		day, ok := p.dayOf(*obj.Key, listPrefix)
		if !ok {
			continue
		}
		byDay[day] = append(byDay[day], *obj.Key)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	// Newest first
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	if len(days) <= minDaysToKeep {
		return
	}

	now := p.now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -p.retentionDays)

	deleted := 0
	for _, day := range days[minDaysToKeep:] {
		if !day.Before(cutoff) {
			continue
		}
		for _, key := range byDay[day] {
			if err := p.store.Delete(ctx, key); err != nil {
				p.log.Error().Err(err).Str("key", key).Msg("Failed to delete old report")
				continue
			}
			deleted++
		}
	}

	if deleted > 0 {
		p.log.Info().Int("deleted", deleted).Int("retention_days", p.retentionDays).Msg("Rotated old reports")
	}
}

// dayOf parses the day folder out of a key such as "reports/2024-01-31/x.xlsx".
func (p *ReportPublisher) dayOf(key, listPrefix string) (time.Time, bool) {
	rest := strings.TrimPrefix(key, listPrefix)
	folder, _, found := strings.Cut(rest, "/")
	if !found {
		return time.Time{}, false
	}
	day, err := time.Parse(dayLayout, folder)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
