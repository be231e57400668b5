package iosources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSources(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "crtbox")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(t *testing.T, home string) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})
	return cfg
}

func TestLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	writeSources(t, home, `
data_sources:
  - name: dispatch
    url: https://example.com/dispatch.sqlite
    file: dispatch.sqlite
    default: true
`)

	reg, err := New(testConfig(t, home)).Load()
	require.NoError(t, err)
	require.Len(t, reg.DataSources, 1)
	assert.Equal(t, "dispatch", reg.DataSources[0].Name)
}

func TestLoad_FileNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()

	_, err := New(testConfig(t, home)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load sources config")
}

func TestSelect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	writeSources(t, home, `
data_sources:
  - name: archive
    url: https://example.com/archive.sqlite
  - name: dispatch
    url: https://example.com/dispatch.sqlite
    default: true
`)

	t.Run("default dataset", func(t *testing.T) {
		ds, err := Select(testConfig(t, home))
		require.NoError(t, err)
		assert.Equal(t, "dispatch", ds.Name)
	})

	t.Run("named dataset", func(t *testing.T) {
		cfg := testConfig(t, home)
		cfg.Update([]config.Option{config.OptSourceName("archive")})

		ds, err := Select(cfg)
		require.NoError(t, err)
		assert.Equal(t, "archive", ds.Name)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		cfg := testConfig(t, home)
		cfg.Update([]config.Option{config.OptSourceName("nope")})

		_, err := Select(cfg)
		require.Error(t, err)
	})
}
