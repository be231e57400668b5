package report

import (
	"slices"
	"time"
)

// Domains holds the selectable filter values derived from a table:
// the sorted distinct supervisors and crates-per-box values, and the
// date bounds of the data. NULL values do not contribute.
type Domains struct {
	Supervisors []string  `json:"supervisors"`
	Crates      []float64 `json:"crates"`
	MinDate     time.Time `json:"minDate"`
	MaxDate     time.Time `json:"maxDate"`
}

// Domains computes the filter domains of the table.
// Supervisors sort lexicographically, crates-per-box values
// numerically. An empty table yields empty domains and zero dates.
func (t Table) Domains() Domains {
	var res Domains
	if t.IsEmpty() {
		return res
	}

	sups := make(map[string]struct{})
	crates := make(map[float64]struct{})
	res.MinDate = t.Rows[0].Date
	res.MaxDate = t.Rows[0].Date

	for _, row := range t.Rows {
		if row.Supervisor != nil {
			sups[*row.Supervisor] = struct{}{}
		}
		if row.CratesBox != nil {
			crates[*row.CratesBox] = struct{}{}
		}
		if row.Date.Before(res.MinDate) {
			res.MinDate = row.Date
		}
		if row.Date.After(res.MaxDate) {
			res.MaxDate = row.Date
		}
	}

	res.Supervisors = make([]string, 0, len(sups))
	for s := range sups {
		res.Supervisors = append(res.Supervisors, s)
	}
	slices.Sort(res.Supervisors)

	res.Crates = make([]float64, 0, len(crates))
	for c := range crates {
		res.Crates = append(res.Crates, c)
	}
	slices.Sort(res.Crates)

	return res
}

// DefaultFilter returns the select-all filter for the table: full
// supervisor and crates domains and the full date span. Applying it
// keeps every row that has both a supervisor and a crates-per-box
// value, which is the select-all state of the dashboard the pipeline
// reproduces.
func DefaultFilter(t Table) Filter {
	d := t.Domains()
	return Filter{
		From:        d.MinDate,
		To:          d.MaxDate,
		Supervisors: d.Supervisors,
		Crates:      d.Crates,
	}
}
