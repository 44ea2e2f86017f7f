package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "tectonic", cfg.Compiler.Binary)
	assert.Equal(t, filepath.Join("templates", "resume.tex"), cfg.MainTemplatePath())
	assert.Equal(t, filepath.Join("templates", "glyphtounicode.tex"), cfg.IncludeTemplatePath())
	assert.Equal(t, 60*time.Second, cfg.LocalTimeout())
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "portfolio.yaml", `
server:
  port: 9090
compiler:
  binary: pdflatex
  remote_timeout_seconds: 5
templates:
  dir: /srv/templates
ratelimit:
  enabled: false
log:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "pdflatex", cfg.Compiler.Binary)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout())
	assert.Equal(t, "/srv/templates/resume.tex", cfg.MainTemplatePath())
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
	// Untouched values keep their defaults.
	assert.Equal(t, 500, cfg.Compiler.PreviewLimit)
}

func TestLoad_YAMLRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "portfolio.yml", "server:\n  prot: 9090\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigParse)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "portfolio.json", `{"cache": {"redis_url": "redis://localhost:6379/0", "ttl_hours": 2}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "portfolio.json", `{ invalid json }`)
	cfg, err := Load(path)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrConfigParse)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/portfolio.yaml")
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_TooLarge(t *testing.T) {
	path := writeConfig(t, "big.yaml", "# "+strings.Repeat("x", MaxFileSize))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigTooLarge)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yaml", "\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("LATEX_COMPILER_PATH", "/opt/tex/bin/xelatex")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("DATABASE_URL", "mongodb://db:27017/portfolio")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, ,10.0.0.2")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeConfig(t, "portfolio.yaml", "server:\n  port: 9090\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/opt/tex/bin/xelatex", cfg.Compiler.Binary)
	assert.Equal(t, "redis://cache:6379", cfg.Cache.RedisURL)
	assert.Equal(t, "mongodb://db:27017/portfolio", cfg.Store.DatabaseURL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvIgnoresUnparseableNumbers(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative timeout", func(c *Config) { c.Compiler.LocalTimeoutSeconds = -1 }, "compiler.local_timeout_seconds"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"missing include", func(c *Config) { c.Templates.Include = "" }, "templates.include"},
		{"bad remote url", func(c *Config) { c.Compiler.RemoteURL = "latexonline" }, "compiler.remote_url"},
		{"bad remote url ignored when disabled", func(c *Config) {
			c.Compiler.RemoteURL = "latexonline"
			c.Compiler.DisableRemote = true
		}, ""},
		{"unknown store scheme", func(c *Config) { c.Store.DatabaseURL = "mysql://db/x" }, "unsupported"},
		{"postgres store", func(c *Config) { c.Store.DatabaseURL = "postgresql://u@db/x" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStoreScheme(t *testing.T) {
	scheme, err := StoreScheme("postgres://localhost/portfolio")
	require.NoError(t, err)
	assert.Equal(t, "postgres", scheme)

	scheme, err = StoreScheme("mongodb+srv://cluster.example.net/portfolio")
	require.NoError(t, err)
	assert.Equal(t, "mongodb", scheme)

	_, err = StoreScheme("sqlite:///tmp/db")
	assert.Error(t, err)
}
