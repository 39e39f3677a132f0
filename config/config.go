// Package config loads the gather command configuration
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding configuration keys, e.g. GATHER_LOG_LEVEL
const EnvPrefix = "GATHER"

// Config represents the gather configuration
type Config struct {
	// Rules is the URL of a slice configuration document; empty uses the built-in rules
	Rules  string `mapstructure:"rules" yaml:"rules"`
	Log    Log    `mapstructure:"log" yaml:"log"`
	Output string `mapstructure:"output" yaml:"output"`
}

// Log configures logging
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns the configuration used when no file or environment override exists
func DefaultConfig() *Config {
	return &Config{
		Log:    Log{Level: "info", Format: "text"},
		Output: "text",
	}
}

// Load reads configuration from path, or from gather.yaml in the working directory when path is empty.
// A missing default file is not an error.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()
	v := viper.New()
	v.SetDefault("rules", defaults.Rules)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("output", defaults.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gather")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	switch c.Output {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid output: %q", c.Output)
	}
	return nil
}

// NewLogger creates a logger writing to out
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
