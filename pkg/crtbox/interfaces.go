package crtbox

import (
	"context"

	"github.com/dispatchlab/crtbox/pkg/report"
)

// Provisioner manages the local copy of the dispatch database file.
// The file is downloaded once and reused; Ensure never touches the
// network when a local copy already exists.
type Provisioner interface {
	// Ensure returns the path to the local database file, downloading
	// it from the dataset URL when it is absent.
	Ensure(ctx context.Context) (string, error)

	// Refresh re-downloads the database file when the remote copy is
	// newer than the local one. It uses a conditional request based on
	// the local file's modification time. The boolean reports whether
	// a new copy was fetched.
	Refresh(ctx context.Context) (string, bool, error)

	// Remove deletes the local database file if it exists.
	Remove() error
}

// Store provides read access to the dispatch database file.
// Implementations open the file read-only; the pipeline never writes
// to the source database.
type Store interface {
	// Open opens the database file at path and verifies that the
	// relations and columns the enriched query needs are present.
	Open(path string) error

	// Close closes the database handle.
	Close() error

	// Enriched runs the join query and materializes its result.
	// Rows whose sales date cannot be parsed are dropped and counted
	// in the returned table.
	Enriched(ctx context.Context) (report.Table, error)
}

// Publisher mirrors the enriched table into the warehouse database
// for external BI tools. Publishing is idempotent per dataset: facts
// from a previous run of the same dataset are replaced.
type Publisher interface {
	// Publish writes the table to the warehouse and records the
	// publication. Returns the number of facts written.
	Publish(ctx context.Context, dataset string, tbl report.Table) (int, error)
}
