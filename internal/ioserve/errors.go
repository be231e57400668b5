package ioserve

import (
	"fmt"

	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/gnames/gn"
)

// StartError creates an error for a listener that cannot start.
func StartError(addr string, err error) error {
	msg := `Cannot start the report API on <em>%s</em>

<em>Possible causes:</em>
  - The port is already in use
  - The host is not a local interface

<em>How to fix:</em>
  1. Pick another port with <em>--port</em> (server.port)`

	vars := []any{addr}

	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("listen %s: %w", addr, err),
	}
}

// ShutdownError creates an error for a shutdown that did not finish
// within the deadline.
func ShutdownError(err error) error {
	msg := "The report API did not shut down cleanly"

	return &gn.Error{
		Code: errcode.ServerShutdownError,
		Msg:  msg,
		Err:  fmt.Errorf("shutdown: %w", err),
	}
}
