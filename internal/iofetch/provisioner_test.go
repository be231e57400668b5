package iofetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(t.TempDir())})
	return cfg
}

func testSource(url string) *sources.DataSource {
	return &sources.DataSource{
		Name: "dispatch",
		URL:  url,
		File: "dispatch.sqlite",
	}
}

func TestEnsure_Downloads(t *testing.T) {
	body := []byte("sqlite payload")
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write(body)
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	path, err := p.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, "dispatch.sqlite", filepath.Base(path))
}

func TestEnsure_ExistingFileIsNoOp(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write([]byte("remote copy"))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	// First call downloads, second must not touch the network.
	path1, err := p.Ensure(context.Background())
	require.NoError(t, err)
	path2, err := p.Ensure(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.Equal(t, 1, hits)
}

func TestEnsure_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	_, err := p.Ensure(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	// No partial or empty file left behind.
	files, err := os.ReadDir(config.CacheDir(cfg.HomeDir))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestEnsure_StatusCheckDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("error page"))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	off := false
	cfg.Update([]config.Option{config.OptSourceValidateStatus(&off)})
	p := New(cfg, testSource(srv.URL))

	// Legacy variant behavior: the body is saved regardless of status.
	path, err := p.Ensure(context.Background())
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "error page", string(got))
}

func TestRefresh_NotModified(t *testing.T) {
	var conditional bool
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("If-Modified-Since") != "" {
				conditional = true
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Write([]byte("v1"))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	path, err := p.Ensure(context.Background())
	require.NoError(t, err)

	path2, fetched, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, conditional, "refresh should send If-Modified-Since")
	assert.False(t, fetched)
	assert.Equal(t, path, path2)

	got, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestRefresh_NewerRemote(t *testing.T) {
	version := "v1"
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(version))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	path, err := p.Ensure(context.Background())
	require.NoError(t, err)

	// Backdate the local file so the server's unconditional 200
	// replaces it.
	old := time.Now().Add(-24 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	version = "v2"
	path2, fetched, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, fetched)

	got, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestRefresh_MissingLocalDownloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("fresh"))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	path, fetched, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, fetched)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestRemove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("data"))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	path, err := p.Ensure(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Remove())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A second removal of a missing file is not an error.
	assert.NoError(t, p.Remove())
}

func TestDownload_TruncatedBodyLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "1000")
			w.Write([]byte("short"))
		}))
	defer srv.Close()

	cfg := testConfig(t)
	p := New(cfg, testSource(srv.URL))

	_, err := p.Ensure(context.Background())
	require.Error(t, err)

	files, err := os.ReadDir(config.CacheDir(cfg.HomeDir))
	require.NoError(t, err)
	assert.Empty(t, files, "a failed transfer must not leave a partial file")
}
