// Package config loads dupfinder settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileName is the configuration file searched for when no path is given.
const FileName = "dupfinder.toml"

// Analyzer backends.
const (
	BackendDict   = "dict"
	BackendRemote = "remote"
)

var (
	// ErrConfigFileNotFound is returned when an explicit config path does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config represents the entire application configuration.
type Config struct {
	Log      Log      `koanf:"log"`
	Server   Server   `koanf:"server"`
	Analyzer Analyzer `koanf:"analyzer"`
}

// Log contains logging configuration.
type Log struct {
	// Minimum level: debug, info, warn, error.
	Level string `koanf:"level"`
	// Output format: console or json.
	Format string `koanf:"format"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Listen address.
	Addr string `koanf:"addr"`
	// Origins allowed to call the API from a browser.
	AllowedOrigins []string `koanf:"allowed_origins"`
	// Maximum request body size in bytes.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// Analyzer contains morphological analyzer configuration.
type Analyzer struct {
	// Backend is "dict" or "remote".
	Backend string `koanf:"backend"`
	// Path to the lexicon used by the dict backend.
	DictPath string `koanf:"dict_path"`
	// Base URL of the service used by the remote backend.
	RemoteURL string `koanf:"remote_url"`
	// Deadline of one analyzer call in milliseconds.
	TimeoutMS int `koanf:"timeout_ms"`
	// Maximum concurrent analyzer calls; 1 serializes them.
	MaxConcurrent int64 `koanf:"max_concurrent"`
	// Retry policy of the remote backend.
	Retry Retry `koanf:"retry"`
}

// Retry contains retry configuration.
type Retry struct {
	// Maximum retry attempts.
	MaxRetries uint64 `koanf:"max_retries"`
	// Initial retry delay in milliseconds.
	InitialIntervalMS int `koanf:"initial_interval_ms"`
	// Maximum retry delay in milliseconds.
	MaxIntervalMS int `koanf:"max_interval_ms"`
}

// Timeout returns the analyzer call deadline.
func (a Analyzer) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// Default returns the configuration used for keys absent from the file.
func Default() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Analyzer: Analyzer{
			Backend:       BackendDict,
			TimeoutMS:     10000,
			MaxConcurrent: 4,
			Retry: Retry{
				MaxRetries:        3,
				InitialIntervalMS: 200,
				MaxIntervalMS:     2000,
			},
		},
	}
}

// searchPaths lists the directories searched for FileName.
func searchPaths() []string {
	paths := []string{".", "config"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dupfinder"))
	}
	return append(paths, "/etc/dupfinder")
}

// Load reads the configuration. With a non-empty path that file must exist;
// otherwise FileName is searched for and defaults are used when none is
// found. The path of the loaded file is returned, or "" for defaults.
// The result is not validated, so callers can apply overrides first.
func Load(path string) (*Config, string, error) {
	k := koanf.New(".")

	usedPath := ""
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error loading %s: %w", path, err)
		}
		usedPath = path
	} else {
		for _, dir := range searchPaths() {
			candidate := filepath.Join(dir, FileName)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := k.Load(file.Provider(candidate), toml.Parser()); err != nil {
				return nil, "", fmt.Errorf("error loading %s: %w", candidate, err)
			}
			usedPath = candidate
			break
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, usedPath, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Analyzer.Backend {
	case BackendDict:
		if c.Analyzer.DictPath == "" {
			return fmt.Errorf("%w: analyzer.dict_path is required for the dict backend", ErrInvalidConfig)
		}
	case BackendRemote:
		if c.Analyzer.RemoteURL == "" {
			return fmt.Errorf("%w: analyzer.remote_url is required for the remote backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown analyzer.backend %q", ErrInvalidConfig, c.Analyzer.Backend)
	}
	if c.Analyzer.TimeoutMS <= 0 {
		return fmt.Errorf("%w: analyzer.timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.Analyzer.MaxConcurrent <= 0 {
		return fmt.Errorf("%w: analyzer.max_concurrent must be positive", ErrInvalidConfig)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
