package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when the default limit applies. Paths ending in "/" match by prefix.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
