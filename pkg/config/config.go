// Package config loads the server configuration from the environment and an
// optional config file.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/forgebridge/forgebridge/pkg/log"
)

// envPrefix namespaces the server's own environment variables. The token is
// additionally read from GITHUB_TOKEN, the name the wider tooling ecosystem
// already sets.
const envPrefix = "FORGEBRIDGE"

// Config holds everything the server needs to start.
type Config struct {
	// Token authenticates requests against the forge API. It is carried, not
	// checked: an invalid token surfaces as an authentication failure on the
	// first tool call, never at startup.
	Token string `mapstructure:"token"`

	// APIBaseURL overrides the API endpoint, e.g. for GitHub Enterprise or a
	// local test double. Empty means the public API.
	APIBaseURL string `mapstructure:"api_base_url"`

	LogLevel log.LogLevel `mapstructure:"log_level"`
}

// Load reads configuration from the environment and, if path is non-empty,
// the given config file. Environment variables win over file values.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("log_level", string(log.LevelInfo))

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv("token", "FORGEBRIDGE_TOKEN", "GITHUB_TOKEN"); err != nil {
		return Config{}, fmt.Errorf("failed to bind token env: %w", err)
	}
	if err := v.BindEnv("api_base_url", "FORGEBRIDGE_API_BASE_URL"); err != nil {
		return Config{}, fmt.Errorf("failed to bind api base url env: %w", err)
	}
	if err := v.BindEnv("log_level", "FORGEBRIDGE_LOG_LEVEL"); err != nil {
		return Config{}, fmt.Errorf("failed to bind log level env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the parts of the configuration that must be known before
// the serve loop starts.
func (c Config) Validate() error {
	switch c.LogLevel {
	case log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	// An empty or invalid token is deliberately not an error here: it
	// surfaces as an authentication failure on the first tool call.
	return nil
}
