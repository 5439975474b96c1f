package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Empty(t, cfg.TemplatesPath, "built-in templates by default")
	assert.Equal(t, "audio", cfg.AudioDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Silent)
	assert.True(t, cfg.WatchTemplates)
	assert.True(t, cfg.UI.ShowStatusBar)
	assert.True(t, cfg.UI.ShowHelp)
	assert.Contains(t, cfg.DBPath, "roster.db")
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Defaults().Validate())
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := Defaults()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing audio dir", func(t *testing.T) {
		cfg := Defaults()
		cfg.AudioDir = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
audio_dir: /srv/exam-audio
log_level: debug
silent: true
watch_templates: false
ui:
  show_help: false
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/exam-audio", cfg.AudioDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Silent)
	assert.False(t, cfg.WatchTemplates)
	assert.False(t, cfg.UI.ShowHelp)
	assert.True(t, cfg.UI.ShowStatusBar, "unset keys keep their defaults")
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: shouty\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PROCTOR_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio_dir: audio\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestWriteDefaultConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "audio", cfg.AudioDir)
}
