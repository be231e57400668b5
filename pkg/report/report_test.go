package report_test

import (
	"testing"
	"time"

	"github.com/dispatchlab/crtbox/pkg/report"
	"github.com/stretchr/testify/assert"
)

// Helpers shared by the package tests.

func fptr(f float64) *float64 { return &f }

func sptr(s string) *string { return &s }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(report.DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// sampleTable builds a small enriched table covering two routes,
// three dates, two supervisors and rows with NULL supervisor, NULL
// crates and NULL ratio.
func sampleTable(t *testing.T) report.Table {
	t.Helper()
	return report.Table{
		Rows: []report.Row{
			{
				Code: "A1", Date: day(t, "2025-03-01"), Qty: 10,
				Route: "R-North", CratesBox: fptr(8),
				CrtBox: fptr(2), Supervisor: sptr("Alicia"),
			},
			{
				Code: "A1", Date: day(t, "2025-03-01"), Qty: 20,
				Route: "R-North", CratesBox: fptr(8),
				CrtBox: fptr(4), Supervisor: sptr("Alicia"),
			},
			{
				Code: "B2", Date: day(t, "2025-03-02"), Qty: 12,
				Route: "R-North", CratesBox: fptr(12),
				CrtBox: fptr(1), Supervisor: sptr("Alicia"),
			},
			{
				Code: "B2", Date: day(t, "2025-03-02"), Qty: 6,
				Route: "R-South", CratesBox: fptr(12),
				CrtBox: fptr(0.5), Supervisor: sptr("Marcus"),
			},
			{
				// ratio NULL because the product cake was zero
				Code: "C3", Date: day(t, "2025-03-03"), Qty: 9,
				Route: "R-South", CratesBox: fptr(8),
				CrtBox: nil, Supervisor: sptr("Marcus"),
			},
			{
				// unmatched product: no crates value
				Code: "X9", Date: day(t, "2025-03-03"), Qty: 3,
				Route: "R-South", CratesBox: nil,
				CrtBox: nil, Supervisor: sptr("Marcus"),
			},
			{
				// route without a supervisor
				Code: "A1", Date: day(t, "2025-03-03"), Qty: 5,
				Route: "R-West", CratesBox: fptr(8),
				CrtBox: fptr(1), Supervisor: nil,
			},
		},
		Dropped: 2,
	}
}

func TestTableIsEmpty(t *testing.T) {
	assert.True(t, report.Table{}.IsEmpty())
	assert.False(t, sampleTable(t).IsEmpty())
}

func TestDateTruncation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	d := time.Date(2025, 3, 1, 23, 45, 12, 0, loc)

	got := report.Date(d)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, "2025-03-01", got.Format(report.DateLayout))
	assert.Zero(t, got.Hour())
}
