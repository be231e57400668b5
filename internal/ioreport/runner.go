package ioreport

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/crtbox"
	"github.com/dispatchlab/crtbox/pkg/report"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// Runner executes the full report pipeline: load, filter, pivot,
// export, summarize.
type Runner struct {
	cfg    *config.Config
	loader *Loader
}

// NewRunner creates a Runner over the given provisioner.
func NewRunner(cfg *config.Config, prov crtbox.Provisioner) *Runner {
	return &Runner{cfg: cfg, loader: NewLoader(cfg, prov)}
}

// BuildFilter derives the effective filter from the config over the
// table's defaults: absent date flags fall back to the data's date
// bounds, absent selections mean everything. A reversed range or a
// malformed date is a validation error.
func BuildFilter(
	cfg *config.Config, tbl report.Table,
) (report.Filter, error) {
	f := report.DefaultFilter(tbl)

	if cfg.Report.From != "" {
		d, err := time.Parse(report.DateLayout, cfg.Report.From)
		if err != nil {
			return f, DateParseError(cfg.Report.From, err)
		}
		f.From = report.Date(d)
	}
	if cfg.Report.To != "" {
		d, err := time.Parse(report.DateLayout, cfg.Report.To)
		if err != nil {
			return f, DateParseError(cfg.Report.To, err)
		}
		f.To = report.Date(d)
	}

	// Nil means "not restricted"; an explicitly empty selection came
	// from the caller and stays empty, yielding an empty result.
	if cfg.Report.Supervisors != nil {
		f.Supervisors = cfg.Report.Supervisors
	}
	if cfg.Report.Crates != nil {
		f.Crates = cfg.Report.Crates
	}

	if err := f.Validate(); err != nil {
		return f, RangeError(f.From, f.To, err)
	}
	return f, nil
}

// Run executes the pipeline and writes both CSV exports to the
// configured output directory. An empty filtered result is a warning
// state with header-only exports, not an error.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	gn.Info("Loading the enriched sales table")
	tbl, err := r.loader.Load(ctx)
	if err != nil {
		return err
	}
	if tbl.Dropped > 0 {
		gn.Warn(
			"<warn>Dropped %d rows with unparsable sales dates</warn>",
			tbl.Dropped,
		)
	}

	f, err := BuildFilter(r.cfg, tbl)
	if err != nil {
		return err
	}

	filtered, err := tbl.Apply(f)
	if err != nil {
		return RangeError(f.From, f.To, err)
	}

	pivot := filtered.Pivot()
	if err = pivot.Reconcile(); err != nil {
		return ReconcileError(err)
	}

	outDir := r.cfg.Report.OutputDir
	pivotPath := filepath.Join(outDir, PivotFileName(f.From, f.To))
	rawPath := filepath.Join(outDir, RawFileName(f.From, f.To))

	var g errgroup.Group
	g.Go(func() error { return WritePivotCSV(pivotPath, pivot) })
	g.Go(func() error { return WriteRawCSV(rawPath, filtered) })
	if err = g.Wait(); err != nil {
		return err
	}

	if filtered.IsEmpty() {
		gn.Warn("<warn>No rows match the selected filters</warn>")
		gn.Message(
			"Header-only exports are in <em>%s</em> and <em>%s</em>",
			pivotPath, rawPath,
		)
	} else {
		printSummary(filtered.Summarize(f.From, f.To))
		gn.Message(
			"Exports are in <em>%s</em> and <em>%s</em>",
			pivotPath, rawPath,
		)
	}

	gn.Message(
		"Report finished in <em>%s</em>",
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

func printSummary(s report.Summary) {
	gn.Info("Total records:  <em>%s</em>",
		humanize.Comma(int64(s.Records)))
	gn.Info("Total Crt_Box:  <em>%.2f</em>", s.TotalCrtBox)
	gn.Info("Unique routes:  <em>%d</em>", s.UniqueRoutes)
	gn.Info("Days in range:  <em>%d</em>", s.Days)
}
