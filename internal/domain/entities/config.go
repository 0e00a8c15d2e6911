package entities

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Generator GeneratorConfig `toml:"generator"`
	Images    ImagesConfig    `toml:"images"`
	Store     StoreConfig     `toml:"store"`
	Theme     ThemeConfig     `toml:"theme"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := c.Images.Validate(); err != nil {
		return fmt.Errorf("images config: %w", err)
	}

	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	Environment     string   `toml:"environment"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if len(origin) < 7 || (!strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://")) {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// IsDevelopment returns true if the server is running in development mode
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development" || s.Environment == ""
}

// GeneratorConfig contains slide content generator configuration. The
// API key is taken from the environment, never from config files.
type GeneratorConfig struct {
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	TimeoutS  int    `toml:"timeout"`
	APIKey    string `toml:"-"`
	MaxSlides int    `toml:"max_slides"`
}

// Validate validates generator configuration
func (g GeneratorConfig) Validate() error {
	if g.BaseURL != "" && !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return fmt.Errorf("generator base URL must start with http:// or https://: %s", g.BaseURL)
	}

	if g.TimeoutS < 0 {
		return errors.New("generator timeout must be non-negative")
	}

	if g.MaxSlides < 0 {
		return errors.New("max slides must be non-negative")
	}

	return nil
}

// GetTimeout returns the generator call timeout as a duration
func (g GeneratorConfig) GetTimeout() time.Duration {
	if g.TimeoutS <= 0 {
		return 60 * time.Second
	}
	return time.Duration(g.TimeoutS) * time.Second
}

// GetMaxSlides returns the slide count ceiling with default
func (g GeneratorConfig) GetMaxSlides() int {
	if g.MaxSlides <= 0 {
		return 20
	}
	return g.MaxSlides
}

// ImagesConfig contains image generation and search configuration
type ImagesConfig struct {
	GeneratorURL   string `toml:"generator_url"`
	SearchURL      string `toml:"search_url"`
	PlaceholderURL string `toml:"placeholder_url"`
	TimeoutS       int    `toml:"timeout"`
	SearchAPIKey   string `toml:"-"`
}

// Validate validates image configuration
func (i ImagesConfig) Validate() error {
	for _, u := range []string{i.GeneratorURL, i.SearchURL, i.PlaceholderURL} {
		if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("image service URL must start with http:// or https://: %s", u)
		}
	}

	if i.TimeoutS < 0 {
		return errors.New("images timeout must be non-negative")
	}

	return nil
}

// GetTimeout returns the image call timeout as a duration
func (i ImagesConfig) GetTimeout() time.Duration {
	if i.TimeoutS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(i.TimeoutS) * time.Second
}

// StoreConfig contains key-value store configuration
type StoreConfig struct {
	Path string `toml:"path"`
}

// Validate validates store configuration
func (s StoreConfig) Validate() error {
	if s.Path != "" && !filepath.IsAbs(s.Path) {
		return errors.New("store path must be absolute")
	}
	return nil
}

// ThemeConfig contains the default theme selection
type ThemeConfig struct {
	Name string `toml:"name"`
}

// Validate validates theme configuration. An empty name is allowed and
// falls back to the default theme.
func (t ThemeConfig) Validate() error {
	if t.Name != "" && !IsValidTheme(t.Name) {
		return fmt.Errorf("unknown theme %q", t.Name)
	}
	return nil
}

// GetName returns the configured theme name with default
func (t ThemeConfig) GetName() string {
	if t.Name == "" {
		return DefaultTheme
	}
	return t.Name
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Verbose bool   `toml:"verbose"` // Enable verbose logging
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// Valid levels
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}
	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
