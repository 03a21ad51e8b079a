package reports

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/stevecalla/Schwabdev/internal/domain"
)

// Output file names, overwritten on every run.
const (
	FullCSVFile     = "account_data_with_positions.csv"
	FullXLSXFile    = "account_data_with_positions.xlsx"
	SummaryXLSXFile = "account_data_with_positions_v2.xlsx"
)

// Reporter writes the full and summary reports into one directory.
type Reporter struct {
	dir    string
	layout Layout
	out    io.Writer
	log    zerolog.Logger
}

// NewReporter creates a reporter writing into dir. Outcome lines for the
// spreadsheets are printed to out (normally os.Stdout).
func NewReporter(dir string, out io.Writer, log zerolog.Logger) *Reporter {
	return &Reporter{
		dir:    dir,
		layout: DefaultLayout,
		out:    out,
		log:    log.With().Str("component", "reporter").Logger(),
	}
}

// Kinds of report file, as named in outcome lines.
const (
	kindCSV   = "CSV"
	kindExcel = "Excel"
)

// WriteFull writes the flattened table as CSV and as a styled workbook. A
// failure of one file does not stop the other; the written paths are
// returned along with any joined error, each naming its file.
func (r *Reporter) WriteFull(rows []domain.FlatRow) ([]string, error) {
	table := FullTable(rows)
	var written []string
	var errs []error

	if path, err := r.writeCSV(table); err != nil {
		errs = append(errs, err)
	} else {
		written = append(written, path)
	}
	if path, err := r.writeFullXLSX(table); err != nil {
		errs = append(errs, err)
	} else {
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}

// WriteSummary writes the 14-column summary workbook with gain/loss coloring.
func (r *Reporter) WriteSummary(rows []domain.EnrichedRow) (string, error) {
	return r.write(SummaryXLSXFile, func(path string) error {
		table, err := SummaryTable(rows)
		if err != nil {
			return err
		}
		return WriteXLSX(path, table, r.layout, GainLossFormat)
	})
}

// WriteAll writes every report file, each inside its own error boundary.
// Each file gets an outcome line naming it; a failure never stops the
// remaining files. It returns the paths of the files that were written.
func (r *Reporter) WriteAll(flat []domain.FlatRow, enriched []domain.EnrichedRow) []string {
	var written []string
	collect := func(kind, file string, rows int, path string, err error) {
		r.report(kind, file, rows, err)
		if err == nil {
			written = append(written, path)
		}
	}

	table := FullTable(flat)
	path, err := r.writeCSV(table)
	collect(kindCSV, FullCSVFile, len(flat), path, err)

	path, err = r.writeFullXLSX(table)
	collect(kindExcel, FullXLSXFile, len(flat), path, err)

	path, err = r.WriteSummary(enriched)
	collect(kindExcel, SummaryXLSXFile, len(enriched), path, err)

	return written
}

func (r *Reporter) writeCSV(table Table) (string, error) {
	return r.write(FullCSVFile, func(path string) error { return WriteCSV(path, table) })
}

func (r *Reporter) writeFullXLSX(table Table) (string, error) {
	return r.write(FullXLSXFile, func(path string) error { return WriteXLSX(path, table, r.layout) })
}

// write runs fn for file inside an error boundary. Errors are prefixed with
// the file name.
func (r *Reporter) write(file string, fn func(path string) error) (string, error) {
	path := filepath.Join(r.dir, file)
	if err := guard(func() error { return fn(path) }); err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	return path, nil
}

func (r *Reporter) report(kind, file string, rows int, err error) {
	if err != nil {
		r.log.Error().Err(err).Str("file", file).Msg("Report failed")
		fmt.Fprintf(r.out, "Error creating %s file: %v\n", kind, err)
		return
	}
	r.log.Info().Str("file", file).Int("rows", rows).Msg("Report written")
	fmt.Fprintf(r.out, "%s file created successfully. %s\n", kind, file)
}

// guard runs fn and turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}
