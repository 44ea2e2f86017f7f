// Package config provides configuration loading and validation for the
// portfolio service.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// MaxFileSize limits config file input.
const MaxFileSize = 1 << 20

// Sentinel errors returned by Load.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigTooLarge = errors.New("config file exceeds maximum size")
)

// Config is the full service configuration. All fields are optional in the
// file; Default supplies the rest and environment variables override both.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
	Compiler  CompilerConfig  `json:"compiler" yaml:"compiler"`
	Templates TemplatesConfig `json:"templates" yaml:"templates"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	RateLimit RateLimitConfig `json:"ratelimit" yaml:"ratelimit"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port                int    `json:"port" yaml:"port"`
	CORSOrigin          string `json:"cors_origin" yaml:"cors_origin"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	MaxBodyBytes        int64  `json:"max_body_bytes" yaml:"max_body_bytes"`
	ExposeStack         bool   `json:"expose_stack" yaml:"expose_stack"`
}

// AuthConfig configures bearer-token checks. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret          string `json:"jwt_secret" yaml:"jwt_secret"`
	JWTExpirationHours int    `json:"jwt_expiration_hours" yaml:"jwt_expiration_hours"`
}

// CompilerConfig configures the local and remote LaTeX compilers.
type CompilerConfig struct {
	Binary               string `json:"binary" yaml:"binary"`
	LocalTimeoutSeconds  int    `json:"local_timeout_seconds" yaml:"local_timeout_seconds"`
	RemoteURL            string `json:"remote_url" yaml:"remote_url"`
	RemoteCompiler       string `json:"remote_compiler" yaml:"remote_compiler"`
	RemoteTimeoutSeconds int    `json:"remote_timeout_seconds" yaml:"remote_timeout_seconds"`
	DisableRemote        bool   `json:"disable_remote" yaml:"disable_remote"`
	PreviewLimit         int    `json:"preview_limit" yaml:"preview_limit"`
	TempDir              string `json:"temp_dir" yaml:"temp_dir"`
}

// TemplatesConfig locates the main template and its auxiliary include.
type TemplatesConfig struct {
	Dir     string `json:"dir" yaml:"dir"`
	Main    string `json:"main" yaml:"main"`
	Include string `json:"include" yaml:"include"`
}

// CacheConfig configures the compiled-artifact cache. Empty RedisURL disables it.
type CacheConfig struct {
	RedisURL string `json:"redis_url" yaml:"redis_url"`
	TTLHours int    `json:"ttl_hours" yaml:"ttl_hours"`
}

// ArchiveConfig configures the artifact archive. Empty GCSBucket disables it.
type ArchiveConfig struct {
	GCSBucket string `json:"gcs_bucket" yaml:"gcs_bucket"`
	Prefix    string `json:"prefix" yaml:"prefix"`
}

// StoreConfig configures the resume document store.
type StoreConfig struct {
	DatabaseURL string `json:"database_url" yaml:"database_url"`
}

// RateLimitConfig configures per-client request limits.
type RateLimitConfig struct {
	Enabled              bool     `json:"enabled" yaml:"enabled"`
	ExportLimit          int      `json:"export_limit" yaml:"export_limit"`
	ExportWindowSeconds  int      `json:"export_window_seconds" yaml:"export_window_seconds"`
	ExportBurst          int      `json:"export_burst" yaml:"export_burst"`
	DefaultLimit         int      `json:"default_limit" yaml:"default_limit"`
	DefaultWindowSeconds int      `json:"default_window_seconds" yaml:"default_window_seconds"`
	Whitelist            []string `json:"whitelist" yaml:"whitelist"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns a runnable configuration: tectonic from PATH, templates in
// ./templates, remote fallback to latexonline.cc, optional backends off.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                8080,
			CORSOrigin:          "*",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 150,
			MaxBodyBytes:        1 << 20,
		},
		Auth: AuthConfig{JWTExpirationHours: 24},
		Compiler: CompilerConfig{
			Binary:               "tectonic",
			LocalTimeoutSeconds:  60,
			RemoteURL:            "https://latexonline.cc/compile",
			RemoteCompiler:       "pdflatex",
			RemoteTimeoutSeconds: 60,
			PreviewLimit:         500,
		},
		Templates: TemplatesConfig{
			Dir:     "templates",
			Main:    "resume.tex",
			Include: "glyphtounicode.tex",
		},
		Cache:   CacheConfig{TTLHours: 24},
		Archive: ArchiveConfig{Prefix: "exports"},
		RateLimit: RateLimitConfig{
			Enabled:              true,
			ExportLimit:          20,
			ExportWindowSeconds:  3600,
			ExportBurst:          5,
			DefaultLimit:         600,
			DefaultWindowSeconds: 60,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration: defaults, then the file at path (YAML or
// JSON by extension, skipped when path is empty), then environment overrides.
// The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxFileSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
	default:
		if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict()); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
	}
	return nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'server.max_body_bytes' must be non-negative")
	}
	for name, v := range map[string]int{
		"server.read_timeout_seconds":      c.Server.ReadTimeoutSeconds,
		"server.write_timeout_seconds":     c.Server.WriteTimeoutSeconds,
		"compiler.local_timeout_seconds":   c.Compiler.LocalTimeoutSeconds,
		"compiler.remote_timeout_seconds":  c.Compiler.RemoteTimeoutSeconds,
		"compiler.preview_limit":           c.Compiler.PreviewLimit,
		"cache.ttl_hours":                  c.Cache.TTLHours,
		"ratelimit.export_limit":           c.RateLimit.ExportLimit,
		"ratelimit.export_window_seconds":  c.RateLimit.ExportWindowSeconds,
		"ratelimit.export_burst":           c.RateLimit.ExportBurst,
		"ratelimit.default_limit":          c.RateLimit.DefaultLimit,
		"ratelimit.default_window_seconds": c.RateLimit.DefaultWindowSeconds,
		"auth.jwt_expiration_hours":        c.Auth.JWTExpirationHours,
	} {
		if v < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}
	if c.Templates.Main == "" || c.Templates.Include == "" {
		return fmt.Errorf("config error: 'templates.main' and 'templates.include' are required")
	}
	if c.Compiler.RemoteURL != "" && !c.Compiler.DisableRemote {
		u, err := url.Parse(c.Compiler.RemoteURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: invalid 'compiler.remote_url': %s", c.Compiler.RemoteURL)
		}
	}
	if c.Store.DatabaseURL != "" {
		if _, err := StoreScheme(c.Store.DatabaseURL); err != nil {
			return err
		}
	}
	return nil
}

// StoreScheme returns "postgres" or "mongodb" for a supported database URL.
func StoreScheme(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("config error: invalid 'store.database_url': %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return "postgres", nil
	case "mongodb", "mongodb+srv":
		return "mongodb", nil
	default:
		return "", fmt.Errorf("config error: unsupported 'store.database_url' scheme %q", u.Scheme)
	}
}

// MainTemplatePath returns the path of the placeholder template.
func (c *Config) MainTemplatePath() string {
	return filepath.Join(c.Templates.Dir, c.Templates.Main)
}

// IncludeTemplatePath returns the path of the auxiliary include file.
func (c *Config) IncludeTemplatePath() string {
	return filepath.Join(c.Templates.Dir, c.Templates.Include)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// LocalTimeout returns the local compile deadline.
func (c *Config) LocalTimeout() time.Duration {
	return time.Duration(c.Compiler.LocalTimeoutSeconds) * time.Second
}

// RemoteTimeout returns the remote compile deadline.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Compiler.RemoteTimeoutSeconds) * time.Second
}

// CacheTTL returns how long compiled artifacts are cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
