package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, "linkedin_insights.db", cfg.DatabasePath)
	require.True(t, cfg.Scraper.Headless)
	require.Equal(t, 45, cfg.Scraper.TimeoutSec)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"9090\"\ndatabase_path: insights.db\nscraper:\n  headless: false\n  timeout_sec: 60\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "insights.db", cfg.DatabasePath)
	require.False(t, cfg.Scraper.Headless)
	require.Equal(t, 60, cfg.Scraper.TimeoutSec)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\n"), 0o644))

	t.Setenv("PORT", "7070")
	t.Setenv("SCRAPER_HEADLESS", "false")
	t.Setenv("SCRAPER_TIMEOUT_SEC", "90")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "7070", cfg.Port)
	require.False(t, cfg.Scraper.Headless)
	require.Equal(t, 90, cfg.Scraper.TimeoutSec)
}

func TestBadEnvValuesIgnored(t *testing.T) {
	t.Setenv("SCRAPER_HEADLESS", "maybe")
	t.Setenv("SCRAPER_TIMEOUT_SEC", "-3")

	cfg, err := Load("")
	require.NoError(t, err)

	require.True(t, cfg.Scraper.Headless)
	require.Equal(t, 45, cfg.Scraper.TimeoutSec)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
