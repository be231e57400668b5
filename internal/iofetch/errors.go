package iofetch

import (
	"fmt"

	"github.com/dispatchlab/crtbox/pkg/errcode"
	"github.com/gnames/gn"
)

// RequestError creates an error for a failed HTTP transfer.
func RequestError(url string, err error) error {
	msg := `Cannot download the dispatch database

<em>URL:</em> %s

<em>Possible causes:</em>
  - No network connection
  - The host is unreachable
  - The transfer timed out (see source.timeout_sec)

<em>How to fix:</em>
  1. Check the network connection
  2. Verify the URL in sources.yaml
  3. Increase <em>source.timeout_sec</em> for slow links`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch %s: %w", url, err),
	}
}

// StatusError creates an error for a non-200 response status.
func StatusError(url string, status int) error {
	msg := `Download failed with HTTP status <em>%d</em>

<em>URL:</em> %s

<em>How to fix:</em>
  1. Verify the URL in sources.yaml is still valid
  2. Set <em>source.validate_status: false</em> to save the body anyway`

	vars := []any{status, url}

	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch %s: status %d", url, status),
	}
}

// SaveError creates an error for a failed write of the downloaded file.
func SaveError(path string, err error) error {
	msg := `Cannot save the downloaded database to <em>%s</em>

<em>Possible causes:</em>
  - No space left on the device
  - Permission denied on the cache directory`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("save %s: %w", path, err),
	}
}

// RemoveError creates an error for a failed removal of the cached file.
func RemoveError(path string, err error) error {
	msg := "Cannot remove the cached database <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchRemoveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("remove %s: %w", path, err),
	}
}
