package ioreport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dispatchlab/crtbox/pkg/report"
)

// PivotFileName returns the export filename for a pivot table over
// the given date range.
func PivotFileName(from, to time.Time) string {
	return fmt.Sprintf(
		"pivot_table_%s_%s.csv",
		from.Format(report.DateLayout), to.Format(report.DateLayout),
	)
}

// RawFileName returns the export filename for the filtered raw rows
// over the given date range.
func RawFileName(from, to time.Time) string {
	return fmt.Sprintf(
		"raw_data_%s_%s.csv",
		from.Format(report.DateLayout), to.Format(report.DateLayout),
	)
}

// PivotCSV streams the pivot table as CSV: the route column, one
// column per date, and the Total column. An empty pivot produces the
// header only.
func PivotCSV(out io.Writer, p report.Pivot) error {
	w := csv.NewWriter(out)

	header := make([]string, 0, len(p.Dates)+2)
	header = append(header, "Route")
	header = append(header, p.Dates...)
	header = append(header, "Total")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range p.Rows {
		rec := make([]string, 0, len(row.Cells)+2)
		rec = append(rec, row.Route)
		for _, cell := range row.Cells {
			rec = append(rec, formatFloat(cell))
		}
		rec = append(rec, formatFloat(row.Total))
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// RawCSV streams the filtered rows as CSV with the same columns the
// original dashboard exported. NULL values become empty fields.
func RawCSV(out io.Writer, tbl report.Table) error {
	w := csv.NewWriter(out)

	header := []string{
		"Sales_Date", "Route", "Crates_Box", "Crt_Box", "Supervisor",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range tbl.Rows {
		rec := []string{
			row.Date.Format(report.DateLayout),
			row.Route,
			optFloatField(row.CratesBox),
			optFloatField(row.CrtBox),
			optStringField(row.Supervisor),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WritePivotCSV writes the pivot table to a file at path.
func WritePivotCSV(path string, p report.Pivot) error {
	var buf bytes.Buffer
	if err := PivotCSV(&buf, p); err != nil {
		return ExportError(path, err)
	}
	return writeAtomic(path, buf.Bytes())
}

// WriteRawCSV writes the filtered rows to a file at path.
func WriteRawCSV(path string, tbl report.Table) error {
	var buf bytes.Buffer
	if err := RawCSV(&buf, tbl); err != nil {
		return ExportError(path, err)
	}
	return writeAtomic(path, buf.Bytes())
}

// writeAtomic writes data to a temporary file next to path and
// renames it into place, so readers never see a partial export.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return ExportError(path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return ExportError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return ExportError(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return ExportError(path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optFloatField(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optStringField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
