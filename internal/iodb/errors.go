package iodb

import (
	"fmt"

	"github.com/gnames/gnlib"
)

// ConnectionError is returned when database connection fails.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with user-friendly message.
func NewConnectionError(host string, port int, database, user string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Connection Failed</title>

<warning>Could not connect to PostgreSQL database.</warning>

<em>Possible causes:</em>
  • PostgreSQL is not running
  • Database configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check your configuration file:
     <em>~/.config/crtbox/crtbox.yaml</em>

  4. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s
`,
		[]any{
			host, port,
			host, user,
			host, port, database, user,
		},
	)

	return ConnectionError{
		error:       fmt.Errorf("failed to connect to %s:%d/%s: %w", host, port, database, cause),
		MessageBase: userBase,
	}
}

// NotConnectedError is returned when an operation runs before Connect.
type NotConnectedError struct {
	error
	gnlib.MessageBase
}

// NewNotConnectedError creates an error for operations on a closed operator.
func NewNotConnectedError() error {
	userBase := gnlib.NewMessage(
		`<title>No Database Connection</title>

<warning>A database operation ran before a connection was established.</warning>
`,
		nil,
	)

	return NotConnectedError{
		error:       fmt.Errorf("database not connected"),
		MessageBase: userBase,
	}
}

// TableCheckError is returned when checking for tables fails.
type TableCheckError struct {
	error
	gnlib.MessageBase
}

// NewTableCheckError creates an error for when table existence check fails.
func NewTableCheckError(cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Check Failed</title>

<warning>Could not verify database state.</warning>
`,
		nil,
	)

	return TableCheckError{
		error:       fmt.Errorf("failed to check database tables: %w", cause),
		MessageBase: userBase,
	}
}

// TableExistsCheckError is returned when a single-table check fails.
type TableExistsCheckError struct {
	error
	gnlib.MessageBase
}

// NewTableExistsCheckError creates an error for a failed table lookup.
func NewTableExistsCheckError(table string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Check Failed</title>

<warning>Could not check if table <em>%s</em> exists.</warning>
`,
		[]any{table},
	)

	return TableExistsCheckError{
		error:       fmt.Errorf("failed to check table %q: %w", table, cause),
		MessageBase: userBase,
	}
}

// QueryTablesError is returned when listing tables fails.
type QueryTablesError struct {
	error
	gnlib.MessageBase
}

// NewQueryTablesError creates an error for a failed table listing.
func NewQueryTablesError(cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Query Failed</title>

<warning>Could not list database tables.</warning>
`,
		nil,
	)

	return QueryTablesError{
		error:       fmt.Errorf("failed to query tables: %w", cause),
		MessageBase: userBase,
	}
}

// ScanTableError is returned when reading a table name fails.
type ScanTableError struct {
	error
	gnlib.MessageBase
}

// NewScanTableError creates an error for a failed table name scan.
func NewScanTableError(cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Query Failed</title>

<warning>Could not read table names.</warning>
`,
		nil,
	)

	return ScanTableError{
		error:       fmt.Errorf("failed to scan table name: %w", cause),
		MessageBase: userBase,
	}
}

// DropTableError is returned when dropping a table fails.
type DropTableError struct {
	error
	gnlib.MessageBase
}

// NewDropTableError creates an error for a failed table drop.
func NewDropTableError(table string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Drop Table Failed</title>

<warning>Could not drop table <em>%s</em>.</warning>

<em>Possible causes:</em>
  • Another session holds a lock on the table
  • The database user lacks DROP privileges
`,
		[]any{table},
	)

	return DropTableError{
		error:       fmt.Errorf("failed to drop table %q: %w", table, cause),
		MessageBase: userBase,
	}
}

// QueryViewsError is returned when listing materialized views fails.
type QueryViewsError struct {
	error
	gnlib.MessageBase
}

// NewQueryViewsError creates an error for a failed view listing.
func NewQueryViewsError(cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Query Failed</title>

<warning>Could not list materialized views.</warning>
`,
		nil,
	)

	return QueryViewsError{
		error:       fmt.Errorf("failed to query materialized views: %w", cause),
		MessageBase: userBase,
	}
}

// ScanViewError is returned when reading a view name fails.
type ScanViewError struct {
	error
	gnlib.MessageBase
}

// NewScanViewError creates an error for a failed view name scan.
func NewScanViewError(cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Query Failed</title>

<warning>Could not read materialized view names.</warning>
`,
		nil,
	)

	return ScanViewError{
		error:       fmt.Errorf("failed to scan view name: %w", cause),
		MessageBase: userBase,
	}
}

// DropViewError is returned when dropping a materialized view fails.
type DropViewError struct {
	error
	gnlib.MessageBase
}

// NewDropViewError creates an error for a failed view drop.
func NewDropViewError(view string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Drop View Failed</title>

<warning>Could not drop materialized view <em>%s</em>.</warning>
`,
		[]any{view},
	)

	return DropViewError{
		error:       fmt.Errorf("failed to drop view %q: %w", view, cause),
		MessageBase: userBase,
	}
}

// CreateViewError is returned when creating a materialized view fails.
type CreateViewError struct {
	error
	gnlib.MessageBase
}

// NewCreateViewError creates an error for a failed view creation.
func NewCreateViewError(view string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Create View Failed</title>

<warning>Could not create materialized view <em>%s</em>.</warning>

<em>Possible causes:</em>
  • The <em>sales_facts</em> table does not exist yet
  • A view with the same name already exists

<em>How to fix:</em>
  Run <em>crtbox publish --drop</em> to rebuild the warehouse schema.
`,
		[]any{view},
	)

	return CreateViewError{
		error:       fmt.Errorf("failed to create view %q: %w", view, cause),
		MessageBase: userBase,
	}
}

// CreateViewIndexError is returned when indexing a view fails.
type CreateViewIndexError struct {
	error
	gnlib.MessageBase
}

// NewCreateViewIndexError creates an error for a failed view index.
func NewCreateViewIndexError(view string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Create View Index Failed</title>

<warning>Could not index materialized view <em>%s</em>.</warning>
`,
		[]any{view},
	)

	return CreateViewIndexError{
		error:       fmt.Errorf("failed to index view %q: %w", view, cause),
		MessageBase: userBase,
	}
}

// RefreshViewError is returned when refreshing a view fails.
type RefreshViewError struct {
	error
	gnlib.MessageBase
}

// NewRefreshViewError creates an error for a failed view refresh.
func NewRefreshViewError(view string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Refresh View Failed</title>

<warning>Could not refresh materialized view <em>%s</em>.</warning>

<em>How to fix:</em>
  If the view is missing, rebuild it:
  <em>crtbox publish --drop</em>
`,
		[]any{view},
	)

	return RefreshViewError{
		error:       fmt.Errorf("failed to refresh view %q: %w", view, cause),
		MessageBase: userBase,
	}
}
