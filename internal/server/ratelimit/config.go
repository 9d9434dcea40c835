package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds a Config whose default limit is requestsPerMinute with the
// given burst. Scoring endpoints share that limit; health and model-info
// requests are unlimited.
func NewConfig(enabled bool, requestsPerMinute, burst int) *Config {
	if !enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    requestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(requestsPerMinute, burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
func DefaultEndpointConfigs(requestsPerMinute, burst int) []EndpointConfig {
	return []EndpointConfig{
		// Uploads decode documents, so they get the configured limit.
		{Path: "/parse", Method: "POST", Limit: requestsPerMinute, Window: time.Minute, Burst: burst},
		{Path: "/score-text", Method: "POST", Limit: requestsPerMinute, Window: time.Minute, Burst: burst},

		{Path: "/model-info", Method: "GET"},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a map.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
