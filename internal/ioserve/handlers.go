package ioserve

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dispatchlab/crtbox/internal/ioreport"
	"github.com/dispatchlab/crtbox/pkg/report"
)

// rowPayload is the JSON form of a filtered raw row. Pointer fields
// serialize SQL NULL as JSON null.
type rowPayload struct {
	Date       string   `json:"date"`
	Route      string   `json:"route"`
	CratesBox  *float64 `json:"cratesBox"`
	CrtBox     *float64 `json:"crtBox"`
	Supervisor *string  `json:"supervisor"`
}

// filtersPayload is the JSON form of the filter domains.
type filtersPayload struct {
	Supervisors []string  `json:"supervisors"`
	Crates      []float64 `json:"crates"`
	MinDate     string    `json:"minDate"`
	MaxDate     string    `json:"maxDate"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("OK"))
}

func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.load(w, r)
	if !ok {
		return
	}
	d := tbl.Domains()
	writeJSON(w, http.StatusOK, filtersPayload{
		Supervisors: d.Supervisors,
		Crates:      d.Crates,
		MinDate:     d.MinDate.Format(report.DateLayout),
		MaxDate:     d.MaxDate.Format(report.DateLayout),
	})
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	filtered, f, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"empty":   filtered.IsEmpty(),
		"summary": filtered.Summarize(f.From, f.To),
	})
}

func (s *Server) pivot(w http.ResponseWriter, r *http.Request) {
	filtered, _, ok := s.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"empty": filtered.IsEmpty(),
		"pivot": filtered.Pivot(),
	})
}

func (s *Server) rows(w http.ResponseWriter, r *http.Request) {
	filtered, _, ok := s.filtered(w, r)
	if !ok {
		return
	}
	rows := make([]rowPayload, len(filtered.Rows))
	for i, row := range filtered.Rows {
		rows[i] = rowPayload{
			Date:       row.Date.Format(report.DateLayout),
			Route:      row.Route,
			CratesBox:  row.CratesBox,
			CrtBox:     row.CrtBox,
			Supervisor: row.Supervisor,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"empty": filtered.IsEmpty(),
		"rows":  rows,
	})
}

func (s *Server) exportPivot(w http.ResponseWriter, r *http.Request) {
	filtered, f, ok := s.filtered(w, r)
	if !ok {
		return
	}
	name := ioreport.PivotFileName(f.From, f.To)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", name))
	if err := ioreport.PivotCSV(w, filtered.Pivot()); err != nil {
		slog.Error("pivot export failed", "error", err)
	}
}

func (s *Server) exportRaw(w http.ResponseWriter, r *http.Request) {
	filtered, f, ok := s.filtered(w, r)
	if !ok {
		return
	}
	name := ioreport.RawFileName(f.From, f.To)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", name))
	if err := ioreport.RawCSV(w, filtered); err != nil {
		slog.Error("raw export failed", "error", err)
	}
}

// load fetches the enriched table, reporting load failures as 500.
func (s *Server) load(
	w http.ResponseWriter, r *http.Request,
) (report.Table, bool) {
	tbl, err := s.loader.Load(r.Context())
	if err != nil {
		slog.Error("load failed", "error", err)
		writeError(w, http.StatusInternalServerError,
			"cannot load the dispatch data")
		return report.Table{}, false
	}
	return tbl, true
}

// filtered loads the table and applies the query's filter. Parse and
// validation problems are 400s.
func (s *Server) filtered(
	w http.ResponseWriter, r *http.Request,
) (report.Table, report.Filter, bool) {
	tbl, ok := s.load(w, r)
	if !ok {
		return report.Table{}, report.Filter{}, false
	}

	f, err := parseFilter(r, tbl)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return report.Table{}, report.Filter{}, false
	}

	filtered, err := tbl.Apply(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return report.Table{}, report.Filter{}, false
	}
	return filtered, f, true
}

// parseFilter builds the filter from query parameters on top of the
// table's defaults. Absent parameters mean "everything"; an
// explicitly empty selection (supervisors=) means the cleared state
// and yields an empty result.
func parseFilter(
	r *http.Request, tbl report.Table,
) (report.Filter, error) {
	f := report.DefaultFilter(tbl)
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		d, err := time.Parse(report.DateLayout, raw)
		if err != nil {
			return f, fmt.Errorf("bad 'from' date %q, want YYYY-MM-DD", raw)
		}
		f.From = report.Date(d)
	}
	if raw := q.Get("to"); raw != "" {
		d, err := time.Parse(report.DateLayout, raw)
		if err != nil {
			return f, fmt.Errorf("bad 'to' date %q, want YYYY-MM-DD", raw)
		}
		f.To = report.Date(d)
	}

	if vals, ok := q["supervisors"]; ok {
		f.Supervisors = splitParam(vals)
	}
	if vals, ok := q["crates"]; ok {
		parts := splitParam(vals)
		crates := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return f, fmt.Errorf("bad 'crates' value %q", p)
			}
			crates = append(crates, v)
		}
		f.Crates = crates
	}

	return f, f.Validate()
}

// splitParam flattens repeated and comma-separated parameter values.
// An empty parameter yields an empty, non-nil slice.
func splitParam(vals []string) []string {
	res := []string{}
	for _, val := range vals {
		for _, part := range strings.Split(val, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				res = append(res, part)
			}
		}
	}
	return res
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
