// Package config loads ember settings from flags, EMBER_* environment
// variables, an optional ember.yaml file and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (EMBER_DB, ...).
const EnvPrefix = "EMBER"

// Keys shared by flags, env vars and the config file.
const (
	KeyDB        = "db"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyWorkers   = "workers"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Config is the resolved runtime configuration.
type Config struct {
	DB        string `mapstructure:"db"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Workers   int    `mapstructure:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: LogFormatConsole,
		Workers:   4,
	}
}

// New returns a viper instance with ember's defaults, env binding and
// config search paths. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyDB, def.DB)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeyWorkers, def.Workers)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("ember")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := configDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	return v
}

// Load reads the optional config file and returns the validated config.
// An explicit configFile must exist; the search-path file may be absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting in c.
func (c Config) Validate() error {
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("unknown log format %q (want %s or %s)", c.LogFormat, LogFormatConsole, LogFormatJSON)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// LoadDotEnv loads environment variables from path if the file exists.
// Variables already set in the environment are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/ember, falling back to ~/.config/ember.
func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ember")
}
