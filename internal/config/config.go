// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoder: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the expert/stage document (JSON or YAML).
	DatasetPath string `koanf:"dataset_path"`

	// CORSAllowedOrigins lists origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRequests and RateLimitWindowSeconds bound requests per client IP.
	// A non-positive RateLimitRequests disables rate limiting.
	RateLimitRequests      int `koanf:"rate_limit_requests"`
	RateLimitWindowSeconds int `koanf:"rate_limit_window_seconds"`

	// MaxOwnedPerRequest caps the owned list accepted by POST /recommendations.
	MaxOwnedPerRequest int `koanf:"max_owned_per_request"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		DatasetPath:            "data/experts.yaml",
		CORSAllowedOrigins:     []string{"*"},
		RateLimitRequests:      600,
		RateLimitWindowSeconds: 60,
		MaxOwnedPerRequest:     500,
	}
}
