// Package ioreport orchestrates the report pipeline: it provisions
// the dispatch database, materializes the enriched table through a
// cache, applies the configured filters and writes the CSV exports.
package ioreport

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/dispatchlab/crtbox/internal/iostore"
	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/crtbox"
	"github.com/dispatchlab/crtbox/pkg/report"
)

// Loader provisions the dispatch database file and materializes the
// enriched table. Results are memoized in a report.Cache fingerprinted
// by the file's path, size and mtime, so a re-provisioned file is
// picked up on the next load while repeated loads of an unchanged
// file cost nothing. Safe for concurrent use.
type Loader struct {
	cfg  *config.Config
	prov crtbox.Provisioner

	mu    sync.Mutex
	path  string
	cache *report.Cache
}

// NewLoader creates a Loader over the given provisioner.
func NewLoader(cfg *config.Config, prov crtbox.Provisioner) *Loader {
	l := &Loader{cfg: cfg, prov: prov}
	l.cache = report.NewCache(l.fingerprint)
	return l
}

// Load returns the enriched table, materializing it from the
// provisioned file when the cache is cold or stale. Ratio rounding
// is applied after the cache, so a config change does not require
// re-reading the file.
func (l *Loader) Load(ctx context.Context) (report.Table, error) {
	path, err := l.prov.Ensure(ctx)
	if err != nil {
		return report.Table{}, err
	}

	l.mu.Lock()
	l.path = path
	l.mu.Unlock()

	tbl, ok := l.cache.Get()
	if !ok {
		tbl, err = l.materialize(ctx, path)
		if err != nil {
			return report.Table{}, err
		}
		l.cache.Put(tbl)
	}

	if l.cfg.Report.RoundRatio {
		tbl = report.RoundRatios(tbl)
	}
	return tbl, nil
}

// Invalidate drops the cached table. The next Load re-reads the file.
func (l *Loader) Invalidate() {
	l.cache.Invalidate()
}

func (l *Loader) materialize(
	ctx context.Context, path string,
) (report.Table, error) {
	st := iostore.New()
	if err := st.Open(path); err != nil {
		return report.Table{}, err
	}
	defer st.Close()
	return st.Enriched(ctx)
}

// fingerprint identifies the provisioned file by path, size and
// mtime. A swapped or re-downloaded file changes the fingerprint and
// invalidates the cache implicitly.
func (l *Loader) fingerprint() (string, error) {
	l.mu.Lock()
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return "", fmt.Errorf("no file provisioned yet")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s|%d|%d", path, info.Size(), info.ModTime().UnixNano(),
	), nil
}
