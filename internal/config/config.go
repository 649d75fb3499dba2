// Package config loads the YAML configuration shared by the CLI and the
// HTTP service.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/phanu-phoo/og-image/internal/fileutil"
	"github.com/phanu-phoo/og-image/internal/logger"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInputTooLarge   = errors.New("config exceeds maximum size")
)

// MaxInputSize limits config files to prevent memory exhaustion.
const MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxAddrLength     = 255
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxFontSizeLength = 20   // "96px", "3.5rem"
	MaxOriginLength   = 255
)

// Range limits.
const (
	MaxWorkers      = 64
	MaxViewportSide = 8192
	MinJPEGQuality  = 1
	MaxJPEGQuality  = 100
)

// Defaults.
const (
	DefaultAddr            = ":3000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultFontSize        = "96px"
	DefaultBrowserTimeout  = 30 * time.Second
	DefaultViewportWidth   = 2048
	DefaultViewportHeight  = 1170
	DefaultJPEGQuality     = 80
	DefaultShutdownTimeout = 15 * time.Second
)

// Config holds all configuration for rendering and serving.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Render  RenderConfig  `yaml:"render"`
	Browser BrowserConfig `yaml:"browser"`
	Log     logger.Config `yaml:"log"`
}

// ServerConfig defines HTTP service options.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	CORSOrigins     []string      `yaml:"corsOrigins"` // Empty = any origin
}

// FontsConfig defines where the font faces are read from.
type FontsConfig struct {
	Dir string `yaml:"dir"` // Empty = no embedded fonts
}

// RenderConfig defines document options.
type RenderConfig struct {
	FooterLogo      string `yaml:"footerLogo"`   // Empty = built-in logo
	EmojiBaseURL    string `yaml:"emojiBaseURL"` // Empty = public twemoji CDN
	DefaultFontSize string `yaml:"defaultFontSize"`
}

// BrowserConfig defines rasterization options.
type BrowserConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	Workers     int           `yaml:"workers"` // 0 = derived from CPUs
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	JPEGQuality int           `yaml:"jpegQuality"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Render: RenderConfig{
			DefaultFontSize: DefaultFontSize,
		},
		Browser: BrowserConfig{
			Timeout:     DefaultBrowserTimeout,
			Width:       DefaultViewportWidth,
			Height:      DefaultViewportHeight,
			JPEGQuality: DefaultJPEGQuality,
		},
		Log: logger.Config{
			Level:  "info",
			Format: logger.FormatText,
		},
	}
}

// Validate checks field lengths and numeric ranges.
// Called automatically by LoadConfig, but available for callers that
// build a Config by hand or apply overrides on top of a loaded one.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	for i, origin := range c.Server.CORSOrigins {
		if err := validateFieldLength(fmt.Sprintf("server.corsOrigins[%d]", i), origin, MaxOriginLength); err != nil {
			return err
		}
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("%w: server.readTimeout must not be negative, got %s", ErrOutOfRange, c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server.writeTimeout must not be negative, got %s", ErrOutOfRange, c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdownTimeout must not be negative, got %s", ErrOutOfRange, c.Server.ShutdownTimeout)
	}

	if err := validateFieldLength("fonts.dir", c.Fonts.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("render.footerLogo", c.Render.FooterLogo, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.emojiBaseURL", c.Render.EmojiBaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.defaultFontSize", c.Render.DefaultFontSize, MaxFontSizeLength); err != nil {
		return err
	}

	if c.Browser.Timeout < 0 {
		return fmt.Errorf("%w: browser.timeout must not be negative, got %s", ErrOutOfRange, c.Browser.Timeout)
	}
	if c.Browser.Workers < 0 || c.Browser.Workers > MaxWorkers {
		return fmt.Errorf("%w: browser.workers must be between 0 and %d, got %d", ErrOutOfRange, MaxWorkers, c.Browser.Workers)
	}
	if c.Browser.Width < 0 || c.Browser.Width > MaxViewportSide {
		return fmt.Errorf("%w: browser.width must be between 0 and %d, got %d", ErrOutOfRange, MaxViewportSide, c.Browser.Width)
	}
	if c.Browser.Height < 0 || c.Browser.Height > MaxViewportSide {
		return fmt.Errorf("%w: browser.height must be between 0 and %d, got %d", ErrOutOfRange, MaxViewportSide, c.Browser.Height)
	}
	if c.Browser.JPEGQuality != 0 && (c.Browser.JPEGQuality < MinJPEGQuality || c.Browser.JPEGQuality > MaxJPEGQuality) {
		return fmt.Errorf("%w: browser.jpegQuality must be between %d and %d, got %d",
			ErrOutOfRange, MinJPEGQuality, MaxJPEGQuality, c.Browser.JPEGQuality)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("log.format: invalid value %q (must be text or json)", c.Log.Format)
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeStrict parses YAML into v, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/og-image/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "og-image", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
