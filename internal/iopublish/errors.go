package iopublish

import (
	"fmt"

	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when publishing is
// attempted without a database connection.
func NotConnectedError() error {
	msg := "Publish attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// FactsError creates an error for failed fact writes.
func FactsError(dataset string, err error) error {
	msg := `Cannot write sales facts for dataset <em>%s</em>

<em>Possible causes:</em>
  - The warehouse schema was not created
  - The database user lacks INSERT permissions

<em>How to fix:</em>
  1. Rebuild the warehouse schema:
     <em>crtbox publish --drop</em>
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.PublishFactsError,
		Msg:  msg,
		Vars: []any{dataset},
		Err:  fmt.Errorf("failed to publish facts for %q: %w", dataset, err),
	}
}

// RecordError creates an error for failed publication records.
func RecordError(dataset string, err error) error {
	msg := `Cannot record the publication of dataset <em>%s</em>

The facts were written but the publication record was not updated.
Re-run <em>crtbox publish</em> to bring the record in sync.`

	return &gn.Error{
		Code: errcode.PublishRecordError,
		Msg:  msg,
		Vars: []any{dataset},
		Err:  fmt.Errorf("failed to record publication for %q: %w", dataset, err),
	}
}

// ViewError creates an error for failed view refreshes after
// publishing.
func ViewError(dataset string, err error) error {
	msg := `Cannot refresh warehouse views after publishing <em>%s</em>

The facts were written but the materialized views are stale.

<em>How to fix:</em>
  Rebuild the views:
  <em>crtbox publish --drop</em>`

	return &gn.Error{
		Code: errcode.PublishViewError,
		Msg:  msg,
		Vars: []any{dataset},
		Err:  fmt.Errorf("failed to refresh views for %q: %w", dataset, err),
	}
}
