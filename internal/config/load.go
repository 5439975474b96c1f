package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath returns the standard config file location,
// ~/.config/proctor/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "proctor", "config.yaml")
}

// Load reads configuration from the given file, or from the standard
// locations when path is empty. A missing config file is not an error; the
// defaults are returned.
func Load(path string) (Config, error) {
	v := viper.New()
	cfg := Defaults()

	v.SetDefault("templates_path", cfg.TemplatesPath)
	v.SetDefault("audio_dir", cfg.AudioDir)
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("log_path", cfg.LogPath)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("silent", cfg.Silent)
	v.SetDefault("watch_templates", cfg.WatchTemplates)
	v.SetDefault("trace_path", cfg.TracePath)
	v.SetDefault("metrics_path", cfg.MetricsPath)
	v.SetDefault("ui.show_status_bar", cfg.UI.ShowStatusBar)
	v.SetDefault("ui.show_help", cfg.UI.ShowHelp)

	v.SetEnvPrefix("PROCTOR")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Dir(DefaultConfigPath()))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			// No config file anywhere is fine; run on defaults.
		} else if path == "" && os.IsNotExist(err) {
			// Same, for direct file stat errors.
		} else if path != "" {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
