package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one route pattern. Path segments equal to "*" match
// any single segment and a trailing "/" matches any suffix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	generationLimit := getEnvInt("RATE_LIMIT_GENERATION_LIMIT", 60)
	generationWindow := getEnvDuration("RATE_LIMIT_GENERATION_WINDOW", time.Hour)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(generationLimit, generationWindow),
	}
}

// DefaultEndpointConfigs returns the route limits: generation endpoints are
// strictest, writes are moderate, health checks are unlimited, and everything else
// falls back to the default limit.
func DefaultEndpointConfigs(generationLimit int, generationWindow time.Duration) []EndpointConfig {
	burst := max(1, generationLimit/10)
	return []EndpointConfig{
		{Path: "/health", Method: "GET"},
		{Path: "/metrics", Method: "GET"},

		{Path: "/startups/*/tasks/*", Method: "POST", Limit: generationLimit, Window: generationWindow, Burst: burst},
		{Path: "/startups/*/pipeline/stream", Method: "POST", Limit: max(1, generationLimit/10), Window: generationWindow, Burst: 1},

		{Path: "/startups", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/startups/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
