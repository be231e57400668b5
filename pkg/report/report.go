// Package report implements the pure transform pipeline over the
// enriched dispatch sales table.
//
// The package has no I/O dependencies. It receives rows materialized
// by the store layer and derives filter domains, filtered subsets,
// the route-by-date pivot and summary metrics from them.
//
// All date handling uses calendar dates truncated to midnight UTC;
// DateLayout is the canonical string form.
package report

import (
	"time"
)

// DateLayout is the canonical date format used in pivot column labels,
// CSV output and CLI flags.
const DateLayout = "2006-01-02"

// Row is one record of the enriched sales table: a sales line joined
// with its product and route supervisor. Pointer fields model SQL NULL
// from the two left joins and from the ratio derivation.
type Row struct {
	// Code is the product code from the sales line.
	Code string

	// Date is the sales date truncated to midnight UTC.
	Date time.Time

	// Qty is the sold quantity.
	Qty float64

	// Route is the distribution route of the sales line.
	Route string

	// Description is the product description. Nil when the product
	// code did not match.
	Description *string

	// Cake is the number of units per cake. Nil when the product
	// code did not match or the product has no value.
	Cake *float64

	// CratesBox is the crates-per-box attribute of the product.
	CratesBox *float64

	// CrtBox is the derived ratio Qty / Cake. Nil when Cake is
	// NULL or zero.
	CrtBox *float64

	// Supervisor of the route. Nil when the route has none.
	Supervisor *string
}

// Table is the materialized result of the enriched query after date
// coercion. Dropped counts the rows removed because their sales date
// could not be parsed.
type Table struct {
	Rows    []Row
	Dropped int
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Date returns d truncated to midnight UTC. Filter bounds and row
// dates go through this so comparisons are calendar-based.
func Date(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
