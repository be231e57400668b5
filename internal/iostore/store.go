// Package iostore implements read access to the dispatch database
// file. This is an impure I/O package that opens the SQLite file,
// verifies its schema and materializes the enriched sales table.
package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dispatchlab/crtbox/pkg/crtbox"
	"github.com/dispatchlab/crtbox/pkg/report"
	_ "modernc.org/sqlite" // SQLite driver
)

// requiredSchema lists the relations and columns the enriched query
// needs. A missing relation or column is a fatal schema error.
var requiredSchema = map[string][]string{
	"sales":       {"Code", "Sales_Date", "Qty", "Route"},
	"Products":    {"Code", "Description", "Cake", "Cr_Bo"},
	"Supervisors": {"Route", "Supervisor"},
}

// enrichedQuery joins sales to its two dimension tables. Left joins
// keep unmatched sales rows; an inner join would silently drop
// unreconciled transactions and change the totals. Product codes are
// compared as trimmed strings because the fact and dimension tables
// disagree on padding and type.
const enrichedQuery = `
SELECT
  s.Code, s.Sales_Date, s.Qty, s.Route,
  p.Description, p.Cake, p.Cr_Bo AS Crates_Box,
  sup.Supervisor,
  CASE
    WHEN p.Cake IS NOT NULL AND p.Cake <> 0
    THEN CAST(s.Qty AS REAL) / CAST(p.Cake AS REAL)
    ELSE NULL
  END AS Crt_Box
FROM sales s
LEFT JOIN Products p
  ON TRIM(CAST(s.Code AS TEXT)) = TRIM(CAST(p.Code AS TEXT))
LEFT JOIN Supervisors sup ON s.Route = sup.Route`

// dateLayouts are the accepted forms of the Sales_Date column. Rows
// that match none of them are dropped, not fatal.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// store implements the crtbox.Store interface.
type store struct {
	db   *sql.DB
	path string
}

// New creates a Store. Call Open before Enriched.
func New() crtbox.Store {
	return &store{}
}

// Open opens the database file read-only and verifies that the
// relations and columns the enriched query needs are present.
func (s *store) Open(path string) error {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return OpenError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return OpenError(path, err)
	}

	if err = verifySchema(db); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database handle.
func (s *store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Enriched runs the join query and materializes its result. Rows
// whose sales date cannot be parsed are dropped and counted in the
// returned table.
func (s *store) Enriched(ctx context.Context) (report.Table, error) {
	var res report.Table
	if s.db == nil {
		return res, QueryError(fmt.Errorf("store is not open"))
	}

	rows, err := s.db.QueryContext(ctx, enrichedQuery)
	if err != nil {
		return res, QueryError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code, rawDate, route        sql.NullString
			description, supervisor     sql.NullString
			qty, cake, cratesBox, ratio sql.NullFloat64
		)
		err = rows.Scan(
			&code, &rawDate, &qty, &route,
			&description, &cake, &cratesBox,
			&supervisor, &ratio,
		)
		if err != nil {
			return report.Table{}, ScanError(err)
		}

		// Mirrors the tolerant date coercion of the original
		// pipeline: a bad date drops the row, not the run.
		date, ok := parseDate(rawDate.String)
		if !rawDate.Valid || !ok {
			res.Dropped++
			continue
		}

		res.Rows = append(res.Rows, report.Row{
			Code:        strings.TrimSpace(code.String),
			Date:        date,
			Qty:         qty.Float64,
			Route:       route.String,
			Description: optString(description),
			Cake:        optFloat(cake),
			CratesBox:   optFloat(cratesBox),
			CrtBox:      optFloat(ratio),
			Supervisor:  optString(supervisor),
		})
	}
	if err = rows.Err(); err != nil {
		return report.Table{}, ScanError(err)
	}

	if res.Dropped > 0 {
		slog.Warn(
			"Dropped rows with unparsable sales dates",
			"dropped", res.Dropped, "path", s.path,
		)
	}
	slog.Info(
		"Materialized enriched sales table",
		"rows", len(res.Rows), "dropped", res.Dropped,
	)

	return res, nil
}

// verifySchema checks the required relations and columns. Names are
// compared case-insensitively, following SQLite's identifier rules.
func verifySchema(db *sql.DB) error {
	rows, err := db.Query(
		`SELECT name FROM sqlite_master WHERE type IN ('table', 'view')`,
	)
	if err != nil {
		return QueryError(err)
	}
	defer rows.Close()

	present := make(map[string]string)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return ScanError(err)
		}
		present[strings.ToLower(name)] = name
	}
	if err = rows.Err(); err != nil {
		return ScanError(err)
	}

	for table, cols := range requiredSchema {
		actual, ok := present[strings.ToLower(table)]
		if !ok {
			return SchemaError(table, "")
		}
		if err = verifyColumns(db, actual, table, cols); err != nil {
			return err
		}
	}
	return nil
}

func verifyColumns(db *sql.DB, actual, table string, cols []string) error {
	query := fmt.Sprintf("PRAGMA table_info(%q)", actual)
	rows, err := db.Query(query)
	if err != nil {
		return QueryError(err)
	}
	defer rows.Close()

	present := make(map[string]struct{})
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dflt       sql.NullString
			primaryKey int
		)
		err = rows.Scan(&cid, &name, &typ, &notNull, &dflt, &primaryKey)
		if err != nil {
			return ScanError(err)
		}
		present[strings.ToLower(name)] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return ScanError(err)
	}

	for _, col := range cols {
		if _, ok := present[strings.ToLower(col)]; !ok {
			return SchemaError(table, col)
		}
	}
	return nil
}

// parseDate tries the accepted layouts and truncates the result to
// midnight UTC.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return report.Date(d), true
		}
	}
	return time.Time{}, false
}

func optString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func optFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
