package iodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewConnectionError("localhost", 5432, "crtbox", "postgres", cause)
	require.NotNil(t, err)

	var connErr ConnectionError
	require.True(t, errors.As(err, &connErr),
		"Error should be of type ConnectionError")

	assert.Contains(t, err.Error(), cause.Error())
	assert.Contains(t, err.Error(), "localhost:5432/crtbox")
	assert.Contains(t, connErr.Msg, "PostgreSQL")
}

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NewNotConnectedError()
	require.NotNil(t, err)

	var ncErr NotConnectedError
	require.True(t, errors.As(err, &ncErr))
	assert.Contains(t, err.Error(), "not connected")
	assert.NotEmpty(t, ncErr.Msg)
}

// TestDropTableError_Structure verifies error structure.
func TestDropTableError_Structure(t *testing.T) {
	cause := errors.New("lock timeout")

	err := NewDropTableError("sales_facts", cause)
	require.NotNil(t, err)

	var dropErr DropTableError
	require.True(t, errors.As(err, &dropErr))
	assert.Contains(t, err.Error(), cause.Error())
	assert.Contains(t, err.Error(), "sales_facts")
	assert.Contains(t, dropErr.Msg, "sales_facts")
}

// TestViewErrors_Structure verifies view error structure.
func TestViewErrors_Structure(t *testing.T) {
	cause := errors.New("relation does not exist")

	err := NewCreateViewError("route_daily_totals", cause)
	var createErr CreateViewError
	require.True(t, errors.As(err, &createErr))
	assert.Contains(t, err.Error(), cause.Error())
	assert.Contains(t, createErr.Msg, "route_daily_totals")

	err = NewRefreshViewError("route_daily_totals", cause)
	var refreshErr RefreshViewError
	require.True(t, errors.As(err, &refreshErr))
	assert.Contains(t, err.Error(), cause.Error())
	assert.Contains(t, err.Error(), "route_daily_totals")
}
