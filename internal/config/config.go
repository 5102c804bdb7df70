// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

// Package config loads service configuration with layered precedence:
// struct defaults, then an optional YAML file, then AVTV_* environment
// variables. The merged result is validated before use.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Redis   RedisConfig   `koanf:"redis"`
	Links   LinksConfig   `koanf:"links"`
	Search  SearchConfig  `koanf:"search"`
	Prober  ProberConfig  `koanf:"prober"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// RequestTimeout is the per-request deadline applied to every
	// inbound request; store calls inherit it through the context. A
	// stalled backend call fails the request instead of hanging it.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RateLimit is the per-IP request budget per minute; 0 disables it.
	RateLimit int `koanf:"rate_limit" validate:"min=0"`
}

// RedisConfig holds the key-value store connection settings.
type RedisConfig struct {
	Addr        string        `koanf:"addr" validate:"required,hostname_port"`
	Password    string        `koanf:"password"`
	DB          int           `koanf:"db" validate:"min=0"`
	DialTimeout time.Duration `koanf:"dial_timeout" validate:"gt=0"`
	PoolSize    int           `koanf:"pool_size" validate:"min=1"`
}

// LinksConfig locates the static channel-alias table.
type LinksConfig struct {
	// Path of the YAML link table; empty disables aliasing.
	Path string `koanf:"path"`
}

// SearchConfig controls the free-text index.
type SearchConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// ProberConfig tunes the raw namespace prober.
type ProberConfig struct {
	// MaxListLen caps list output for an exact list-typed match.
	MaxListLen int `koanf:"max_list_len" validate:"min=1"`
}

// LoggingConfig holds the log settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns the configuration applied before file and
// environment overrides.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            9090,
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       300,
		},
		Redis: RedisConfig{
			Addr:        "127.0.0.1:6379",
			DB:          0,
			DialTimeout: 5 * time.Second,
			PoolSize:    10,
		},
		Links:  LinksConfig{Path: ""},
		Search: SearchConfig{Enabled: false, Path: ""},
		Prober: ProberConfig{MaxListLen: 100},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Search.Enabled && c.Search.Path == "" {
		return fmt.Errorf("config: search.path is required when search is enabled")
	}
	return nil
}
