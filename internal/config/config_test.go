package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/orbital/internal/config"
	"github.com/f3rmion/orbital/internal/orbital"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, orbital.Campaign, cfg.GameMode())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Mode = "sandbox"
	cfg.StartElement = 26
	require.NoError(t, config.Save(dir, cfg))

	got, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, orbital.Sandbox, got.GameMode())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("start_element: 8\n"), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.StartElement)
	assert.Equal(t, "campaign", cfg.Mode)
	assert.Equal(t, "progress.db", cfg.DBPath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"bad mode":    "mode: arcade\n",
		"bad element": "start_element: 200\n",
		"bad yaml":    "mode: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(body), 0644))
			_, err := config.Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "progress.db"), config.Resolve("/cfg", "progress.db"))
	assert.Equal(t, "/data/p.db", config.Resolve("/cfg", "/data/p.db"))
	assert.Equal(t, "", config.Resolve("/cfg", ""))
}
