// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, .env, an optional YAML file and WEATHER_* env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"net"
	"time"
)

// Config contains process configuration. It is read once at startup and
// never mutated afterwards.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// CWAAPIKey is the Authorization credential for the CWA open-data API.
	CWAAPIKey string `koanf:"cwa_api_key"`

	// CWABaseURL is the CWA API root.
	CWABaseURL string `koanf:"cwa_base_url"`

	// UpstreamTimeoutMS bounds each CWA request.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// CORSOrigin is sent as Access-Control-Allow-Origin.
	CORSOrigin string `koanf:"cors_origin"`

	// RateLimitRPS caps inbound requests per second; 0 disables limiting.
	RateLimitRPS float64 `koanf:"rate_limit_rps"`

	// RateLimitBurst is the limiter bucket size.
	RateLimitBurst int `koanf:"rate_limit_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":3000",
		CWABaseURL:        "https://opendata.cwa.gov.tw/api",
		UpstreamTimeoutMS: 10_000,
		CORSOrigin:        "*",
		RateLimitRPS:      0,
		RateLimitBurst:    20,
	}
}

// UpstreamTimeout returns UpstreamTimeoutMS as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

// HasCredential reports whether a CWA API key is configured.
func (c *Config) HasCredential() bool {
	return c.CWAAPIKey != ""
}

// withPort replaces the port of addr, keeping its host.
func withPort(addr, port string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}
