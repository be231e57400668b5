package ioreport

import (
	"fmt"
	"time"

	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/dispatchlab/crtbox/pkg/report"
	"github.com/gnames/gn"
)

// DateParseError creates a validation error for a date flag that is
// not in YYYY-MM-DD form.
func DateParseError(raw string, err error) error {
	msg := `Cannot parse date <em>%s</em>

Dates use the <em>YYYY-MM-DD</em> form, for example 2024-01-31.`

	vars := []any{raw}

	return &gn.Error{
		Code: errcode.ReportRangeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("parse date %q: %w", raw, err),
	}
}

// RangeError creates a validation error for a reversed date range.
// The pipeline stops before any filtering.
func RangeError(from, to time.Time, err error) error {
	msg := `Start date <em>%s</em> is after end date <em>%s</em>

<em>How to fix:</em>
  1. Swap the <em>--from</em> and <em>--to</em> values`

	vars := []any{
		from.Format(report.DateLayout),
		to.Format(report.DateLayout),
	}

	return &gn.Error{
		Code: errcode.ReportRangeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid date range: %w", err),
	}
}

// ExportError creates an error for a failed CSV export.
func ExportError(path string, err error) error {
	msg := `Cannot write export <em>%s</em>

<em>Possible causes:</em>
  - The output directory does not exist
  - No space left on the device
  - Permission denied

<em>How to fix:</em>
  1. Check the <em>--out</em> directory (report.output_dir)`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReportExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("export %s: %w", path, err),
	}
}

// ReconcileError creates an error for a pivot whose totals disagree
// with its cells. This is an internal invariant; seeing it means a
// bug in the pivot code, not bad input.
func ReconcileError(err error) error {
	msg := "Pivot totals failed the reconciliation check"

	return &gn.Error{
		Code: errcode.ReportReconcileError,
		Msg:  msg,
		Err:  fmt.Errorf("reconcile: %w", err),
	}
}
