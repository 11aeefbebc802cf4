// Package config loads the crudl settings from an optional YAML file and
// CRUDL_ environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Load, e.g.
// CRUDL_ENDPOINT or CRUDL_PAGE_SIZE.
const EnvPrefix = "CRUDL"

// Setting keys.
const (
	KeyEndpoint = "endpoint"
	KeyListen   = "listen"
	KeyPageSize = "page_size"
	KeyDebug    = "debug"
	KeyLogLevel = "log_level"
)

// Config holds the crudl settings.
type Config struct {
	// Endpoint is the GraphQL API the client commands talk to.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// Listen is the address of the demo server.
	Listen   string `mapstructure:"listen" yaml:"listen"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint: "http://localhost:8080/graphql",
		Listen:   ":8080",
		PageSize: 20,
		LogLevel: "info",
	}
}

// Load reads the settings. Values are taken, from highest to lowest
// precedence, from overrides, the environment, the YAML file at path and
// the defaults. With an empty path, ./crudl.yaml is read if it exists.
func Load(path string, overrides map[string]any) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyEndpoint, def.Endpoint)
	v.SetDefault(KeyListen, def.Listen)
	v.SetDefault(KeyPageSize, def.PageSize)
	v.SetDefault(KeyDebug, def.Debug)
	v.SetDefault(KeyLogLevel, def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("crudl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q", c.Endpoint)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be > 0, got %d", c.PageSize)
	}
	return nil
}
