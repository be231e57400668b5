package iostore

import (
	"fmt"

	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/gnames/gn"
)

// OpenError creates an error for a database file that cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open the dispatch database <em>%s</em>

<em>Possible causes:</em>
  - The file is missing or unreadable
  - The file is not a SQLite database

<em>How to fix:</em>
  1. Run <em>crtbox fetch --force</em> to download a fresh copy`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("open %s: %w", path, err),
	}
}

// SchemaError creates an error for a missing relation or column.
// An empty column means the whole relation is absent.
func SchemaError(table, column string) error {
	var msg string
	var vars []any
	var err error

	if column == "" {
		msg = `The dispatch database has no <em>%s</em> relation

The file is probably truncated or built from a different schema.

<em>How to fix:</em>
  1. Run <em>crtbox fetch --force</em> to download a fresh copy
  2. Check that sources.yaml points at a dispatch database`
		vars = []any{table}
		err = fmt.Errorf("missing relation %s", table)
	} else {
		msg = `Relation <em>%s</em> has no <em>%s</em> column

The file was probably built from a different schema version.`
		vars = []any{table, column}
		err = fmt.Errorf("missing column %s.%s", table, column)
	}

	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  err,
	}
}

// QueryError creates an error for a failed query execution.
func QueryError(err error) error {
	msg := "Cannot query the dispatch database"

	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("query: %w", err),
	}
}

// ScanError creates an error for a failed row scan.
func ScanError(err error) error {
	msg := "Cannot read rows from the dispatch database"

	return &gn.Error{
		Code: errcode.StoreScanError,
		Msg:  msg,
		Err:  fmt.Errorf("scan: %w", err),
	}
}
