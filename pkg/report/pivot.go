package report

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// PivotRow is one route of the pivot: the summed ratio per date column
// plus the row total. Cells align with Pivot.Dates.
type PivotRow struct {
	Route string    `json:"route"`
	Cells []float64 `json:"cells"`
	Total float64   `json:"total"`
}

// Pivot is the route-by-date crosstab of summed crates-per-box ratios.
// Dates are the column labels in ascending order; rows sort by total
// descending. Missing combinations hold explicit zeros.
type Pivot struct {
	Dates []string   `json:"dates"`
	Rows  []PivotRow `json:"rows"`
}

// Pivot groups the table by (date, route), sums the ratio null-safely
// and reshapes the groups into a route-by-date crosstab. NULL ratios
// contribute nothing to a sum; a (date, route) pair absent from the
// data produces a zero cell. Rows with equal totals sort by route name
// for deterministic output.
func (t Table) Pivot() Pivot {
	var res Pivot
	if t.IsEmpty() {
		return res
	}

	type key struct {
		date  string
		route string
	}
	sums := make(map[key]float64)
	dates := make(map[string]struct{})
	routes := make(map[string]struct{})

	for _, row := range t.Rows {
		d := row.Date.Format(DateLayout)
		k := key{date: d, route: row.Route}
		dates[d] = struct{}{}
		routes[row.Route] = struct{}{}
		// the cell exists even when every ratio in the group is NULL
		if _, ok := sums[k]; !ok {
			sums[k] = 0
		}
		if row.CrtBox != nil {
			sums[k] += *row.CrtBox
		}
	}

	res.Dates = make([]string, 0, len(dates))
	for d := range dates {
		res.Dates = append(res.Dates, d)
	}
	slices.Sort(res.Dates)

	res.Rows = make([]PivotRow, 0, len(routes))
	for route := range routes {
		pr := PivotRow{Route: route, Cells: make([]float64, len(res.Dates))}
		for i, d := range res.Dates {
			if sum, ok := sums[key{date: d, route: route}]; ok {
				pr.Cells[i] = sum
				pr.Total += sum
			}
		}
		res.Rows = append(res.Rows, pr)
	}

	slices.SortFunc(res.Rows, func(a, b PivotRow) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		default:
			return strings.Compare(a.Route, b.Route)
		}
	})

	return res
}

// Reconcile recomputes every row total from its cells and reports the
// first route whose stored total disagrees. Used as a sanity check by
// tests and the export path.
func (p Pivot) Reconcile() error {
	const eps = 1e-9
	for _, row := range p.Rows {
		var sum float64
		for _, c := range row.Cells {
			sum += c
		}
		if math.Abs(sum-row.Total) > eps {
			return fmt.Errorf(
				"route %s: total %f does not match cell sum %f",
				row.Route, row.Total, sum,
			)
		}
	}
	return nil
}
