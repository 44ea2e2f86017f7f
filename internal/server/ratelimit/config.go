package ratelimit

import (
	"time"

	"github.com/jonathan/portfolio/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern: exact, "{param}" segments, or prefix when ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the service config.
func FromConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	whitelist := make(map[string]bool, len(cfg.Whitelist))
	for _, ip := range cfg.Whitelist {
		whitelist[ip] = true
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   time.Duration(cfg.DefaultWindowSeconds) * time.Second,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       whitelist,
		Blacklist:       make(map[string]bool),
		EndpointConfigs: ExportEndpointConfigs(
			cfg.ExportLimit,
			time.Duration(cfg.ExportWindowSeconds)*time.Second,
			cfg.ExportBurst,
		),
	}
}

// ExportEndpointConfigs returns the limits for the compile endpoints. Every
// request to them may spawn a compiler or call the remote service.
func ExportEndpointConfigs(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/resume/export", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/api/resumes/{id}/export", Method: "GET", Limit: limit, Window: window, Burst: burst},
	}
}
