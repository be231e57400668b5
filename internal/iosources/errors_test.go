package iosources_test

import (
	"errors"
	"testing"

	"github.com/dispatchlab/crtbox/internal/iosources"
	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourcesConfigError verifies error structure.
func TestSourcesConfigError(t *testing.T) {
	path := "/test/sources.yaml"
	originalErr := errors.New("file not found")

	err := iosources.SourcesConfigError(path, originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SourcesConfigError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 2)
	assert.Equal(t, path, gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestSourceNotFoundError verifies error structure.
func TestSourceNotFoundError(t *testing.T) {
	originalErr := errors.New("dataset 'nope' is not in the registry")

	err := iosources.SourceNotFoundError("nope", originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SourceNotFoundError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 1)
	assert.Equal(t, "nope", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
