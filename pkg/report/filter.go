package report

import (
	"fmt"
	"slices"
	"time"
)

// Filter selects rows of the enriched table. Supervisors and Crates
// are literal selection sets: an empty (or nil) set selects nothing,
// which mirrors a cleared multiselect. Use DefaultFilter for the
// select-all state.
//
// All conditions are conjunctive: a row survives when its date falls
// within [From, To] inclusive AND its supervisor is selected AND its
// crates-per-box value is selected. Rows with NULL in a filtered
// column never match.
type Filter struct {
	From        time.Time
	To          time.Time
	Supervisors []string
	Crates      []float64
}

// Validate checks the filter's date range. A start date after the end
// date is a range error; the pipeline stops before any filtering.
func (f Filter) Validate() error {
	if f.From.After(f.To) {
		return fmt.Errorf(
			"start date %s is after end date %s",
			f.From.Format(DateLayout), f.To.Format(DateLayout),
		)
	}
	return nil
}

// Apply returns the subset of the table the filter selects.
// An invalid date range returns the validation error and no rows.
// Empty selection sets produce an empty table, not an error; the
// caller decides how to surface the empty state.
func (t Table) Apply(f Filter) (Table, error) {
	if err := f.Validate(); err != nil {
		return Table{}, err
	}

	res := Table{Dropped: t.Dropped}
	if len(f.Supervisors) == 0 || len(f.Crates) == 0 {
		return res, nil
	}

	from := Date(f.From)
	to := Date(f.To)

	for _, row := range t.Rows {
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		if row.Supervisor == nil ||
			!slices.Contains(f.Supervisors, *row.Supervisor) {
			continue
		}
		if row.CratesBox == nil ||
			!slices.Contains(f.Crates, *row.CratesBox) {
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	return res, nil
}
