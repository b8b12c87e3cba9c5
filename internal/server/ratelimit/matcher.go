package ratelimit

import "strings"

// MatchEndpoint returns the first config whose method and path pattern match
// the request, or nil.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		config := &configs[i]
		if config.Method == method && matchPath(config.Path, path) {
			return config
		}
	}
	return nil
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	prefix := strings.HasSuffix(pattern, "/")
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if prefix {
		if len(pathParts) <= len(patternParts) {
			return false
		}
	} else if len(pathParts) != len(patternParts) {
		return false
	}

	for i, part := range patternParts {
		if part != "*" && part != pathParts[i] {
			return false
		}
	}
	return true
}
