// Package config provides configuration types and defaults for proctor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration options for proctor.
type Config struct {
	// TemplatesPath points at the announcement template file. Empty means
	// the built-in template set.
	TemplatesPath string `mapstructure:"templates_path"`

	// AudioDir is the directory announcement audio files are resolved in.
	AudioDir string `mapstructure:"audio_dir"`

	// DBPath is the subject roster database. Empty disables persistence.
	DBPath string `mapstructure:"db_path"`

	LogPath  string `mapstructure:"log_path"`
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error

	// Silent replaces the audio backend with a no-op sink. Announcements
	// still advance through the timeline on schedule.
	Silent bool `mapstructure:"silent"`

	// WatchTemplates reloads the template file automatically when it
	// changes on disk.
	WatchTemplates bool `mapstructure:"watch_templates"`

	// TracePath enables scheduler tick tracing to the given file.
	TracePath string `mapstructure:"trace_path"`

	// MetricsPath enables periodic metric export to the given file.
	MetricsPath string `mapstructure:"metrics_path"`

	UI UIConfig `mapstructure:"ui"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowHelp      bool `mapstructure:"show_help"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		TemplatesPath:  "",
		AudioDir:       "audio",
		DBPath:         filepath.Join(home, ".proctor", "roster.db"),
		LogPath:        filepath.Join(home, ".proctor", "proctor.log"),
		LogLevel:       "info",
		WatchTemplates: true,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowHelp:      true,
		},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.AudioDir == "" {
		return fmt.Errorf("audio_dir is required")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Proctor Configuration

# Announcement template file (default: built-in template set)
# templates_path: /path/to/templates.yaml

# Directory containing announcement audio files
audio_dir: audio

# Subject roster database (restores registered subjects on startup).
# Leave empty to disable persistence.
# db_path: ~/.proctor/roster.db

# Logging (the terminal belongs to the UI, so logs go to a file)
# log_path: ~/.proctor/proctor.log
log_level: info

# Replace the audio backend with silence; the timeline still advances
silent: false

# Reload the template file automatically when it changes on disk
watch_templates: true

# Write scheduler tick traces to a file (debugging aid)
# trace_path: ~/.proctor/trace.jsonl

# Export announcement counters and tick timings to a file
# metrics_path: ~/.proctor/metrics.jsonl

# UI settings
ui:
  show_status_bar: true  # Clock, audio backend, missing-file count
  show_help: true        # Key hints at the bottom
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
