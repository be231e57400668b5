package iosources

import (
	"fmt"

	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/gnames/gn"
)

// SourcesConfigError creates an error for when sources.yaml
// cannot be loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load sources configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to regenerate the default on the next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources config: %w", err),
	}
}

// SourceNotFoundError creates an error for when the configured
// dataset name is not in the registry.
func SourceNotFoundError(name string, err error) error {
	msg := `Dataset <em>%s</em> is not in sources.yaml

<em>How to fix:</em>
  1. List known datasets: check sources.yaml
  2. Pick one with <em>--source</em> or the source.name setting`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.SourceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("dataset not found: %w", err),
	}
}
