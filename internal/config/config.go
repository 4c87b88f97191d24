// Package config loads application configuration with viper: defaults, an
// optional YAML config file under the pikar home directory, and PIKAR_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// Config is the application configuration.
type Config struct {
	HomeDir  string         `mapstructure:"home_dir"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultHomeDir returns the default pikar home directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pikar"
	}
	return filepath.Join(home, ".pikar")
}

// DefaultConfigPath returns the default config file path under homeDir.
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}

// Load reads configuration from the given file path (optional), environment,
// and defaults. A missing config file is not an error; malformed content is.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("home_dir", DefaultHomeDir())
	v.SetDefault("database.path", filepath.Join(DefaultHomeDir(), "pikar.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("PIKAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to read config file", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if c.Database.Path == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "database path is required")
	}
	return nil
}

// EnsureHomeDir creates the home directory if it does not exist.
func (c *Config) EnsureHomeDir() error {
	if err := os.MkdirAll(c.HomeDir, 0o755); err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED, "failed to create home directory", err)
	}
	return nil
}
