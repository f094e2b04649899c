package ratelimit

import "strings"

// unlimited routes are never throttled: probes, scrapes and the event stream.
var unlimited = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
	"GET /events":  true,
}

// MatchEndpoint returns the config for method and path, or nil when the
// default limit applies. Unlimited routes get a zero-limit config.
func MatchEndpoint(method, path string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Method: method, Path: path}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
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
