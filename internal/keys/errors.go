// Package keys rotates API keys for rate-limited providers.
//
// The current key index for each service is persisted in a StateStore so that
// concurrent callers and restarted processes converge on the same key.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

// NoKeysConfiguredError is returned before any provider call when a pool is empty.
type NoKeysConfiguredError struct {
	Service string
}

func (e *NoKeysConfiguredError) Error() string {
	return fmt.Sprintf("no API keys configured for %s", e.Service)
}

// AllKeysExhaustedError is returned when every key in a pool was rate limited.
type AllKeysExhaustedError struct {
	Service  string
	Attempts int
	Last     error
}

func (e *AllKeysExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("all %d API keys for %s are rate limited: %v", e.Attempts, e.Service, e.Last)
	}
	return fmt.Sprintf("all %d API keys for %s are rate limited", e.Attempts, e.Service)
}

func (e *AllKeysExhaustedError) Unwrap() error {
	return e.Last
}

// RateLimitError marks a provider failure as a rate-limit signal.
// Provider clients wrap 429 / RESOURCE_EXHAUSTED responses in it.
type RateLimitError struct {
	Service string
	Cause   error
}

func (e *RateLimitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s rate limited: %v", e.Service, e.Cause)
	}
	return fmt.Sprintf("%s rate limited", e.Service)
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// rateLimitPatterns are matched against lowercased error messages from
// providers that do not expose a structured status. A bare "429" is not a
// pattern: ports, request ids, and byte counts contain it too.
var rateLimitPatterns = []string{
	"error 429",
	"status 429",
	"status code 429",
	"status: 429",
	"code 429",
	"code = 429",
	"http 429",
	"rate limit",
	"ratelimit",
	"too many requests",
	"resource_exhausted",
	"resource exhausted",
	"quota exceeded",
	"exceeded your current quota",
}

// IsRateLimited reports whether err is a rate-limit signal.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}

	var marker interface{ RateLimited() bool }
	if errors.As(err, &marker) && marker.RateLimited() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range rateLimitPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
