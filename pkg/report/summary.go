package report

import (
	"math"
	"time"
)

// Summary holds the headline metrics of a filtered table.
type Summary struct {
	// Records is the number of rows after filtering.
	Records int `json:"records"`

	// TotalCrtBox is the sum of the non-NULL crates-per-box ratios.
	TotalCrtBox float64 `json:"totalCrtBox"`

	// UniqueRoutes is the number of distinct routes.
	UniqueRoutes int `json:"uniqueRoutes"`

	// Days is the inclusive day span of the report range.
	Days int `json:"days"`
}

// Summarize computes the summary metrics of the table over the
// [from, to] range the table was filtered with.
func (t Table) Summarize(from, to time.Time) Summary {
	res := Summary{
		Records: len(t.Rows),
		Days:    int(Date(to).Sub(Date(from)).Hours()/24) + 1,
	}

	routes := make(map[string]struct{})
	for _, row := range t.Rows {
		routes[row.Route] = struct{}{}
		if row.CrtBox != nil {
			res.TotalCrtBox += *row.CrtBox
		}
	}
	res.UniqueRoutes = len(routes)

	return res
}

// RoundRatios returns a copy of the table with every non-NULL ratio
// rounded to the nearest whole number. NULL ratios stay NULL. Applied
// before filtering and pivoting when round_ratio is configured.
func RoundRatios(t Table) Table {
	res := Table{
		Rows:    make([]Row, len(t.Rows)),
		Dropped: t.Dropped,
	}
	for i, row := range t.Rows {
		if row.CrtBox != nil {
			v := math.Round(*row.CrtBox)
			row.CrtBox = &v
		}
		res.Rows[i] = row
	}
	return res
}
