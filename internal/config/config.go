// Package config loads and saves the taskboard configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	// DataDir holds the SQLite database and the keyring file backend.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// DBFile is the database filename inside DataDir.
	DBFile string `mapstructure:"db_file" yaml:"db_file"`

	// NotifyDebounceMS is the quiescence delay for change
	// notifications, in milliseconds.
	NotifyDebounceMS int `mapstructure:"notify_debounce_ms" yaml:"notify_debounce_ms"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/taskboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskboard", "config.yaml")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	return &Config{
		DataDir:          defaultDataDir(),
		DBFile:           "taskboard.db",
		NotifyDebounceMS: 250,
		LogLevel:         "warn",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "taskboard")
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("db_file", "taskboard.db")
	v.SetDefault("notify_debounce_ms", 250)
	v.SetDefault("log_level", "warn")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data_dir", cfg.DataDir)
	v.Set("db_file", cfg.DBFile)
	v.Set("notify_debounce_ms", cfg.NotifyDebounceMS)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// DBPath is the full path of the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// KeyringDir is where the keyring file backend stores the folder
// grant when no system keyring is available.
func (c *Config) KeyringDir() string {
	return filepath.Join(c.DataDir, "keyring")
}
