package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/phanu-phoo/og-image/internal/config"
)

const envPrefix = "OGIMAGE_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // OGIMAGE_CONFIG: config file name or path
	Addr       string        // OGIMAGE_ADDR: listen address
	FontDir    string        // OGIMAGE_FONT_DIR: font directory
	Timeout    time.Duration // OGIMAGE_TIMEOUT: per-screenshot timeout
	Workers    int           // OGIMAGE_WORKERS: browser instances
	LogLevel   string        // OGIMAGE_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid OGIMAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"OGIMAGE_CONFIG":    true,
	"OGIMAGE_ADDR":      true,
	"OGIMAGE_FONT_DIR":  true,
	"OGIMAGE_TIMEOUT":   true,
	"OGIMAGE_WORKERS":   true,
	"OGIMAGE_LOG_LEVEL": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and integers are reported rather than ignored.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("OGIMAGE_CONFIG"),
		Addr:       getenv("OGIMAGE_ADDR"),
		FontDir:    getenv("OGIMAGE_FONT_DIR"),
		LogLevel:   getenv("OGIMAGE_LOG_LEVEL"),
	}

	if timeout := getenv("OGIMAGE_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: OGIMAGE_TIMEOUT=%q (want a positive duration like 30s)", ErrInvalidEnv, timeout)
		}
		cfg.Timeout = d
	}

	if workers := getenv("OGIMAGE_WORKERS"); workers != "" {
		w, err := strconv.Atoi(workers)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("%w: OGIMAGE_WORKERS=%q (want a non-negative integer)", ErrInvalidEnv, workers)
		}
		cfg.Workers = w
	}

	return cfg, nil
}

// warnUnknownEnvVars prints warnings for unrecognized OGIMAGE_* variables.
// Helps catch typos like OGIMAGE_WORKER instead of OGIMAGE_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment values over cfg.
// Call after loading the config file and before applying flags:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.FontDir != "" {
		cfg.Fonts.Dir = env.FontDir
	}
	if env.Timeout > 0 {
		cfg.Browser.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Browser.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
