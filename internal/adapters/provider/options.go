package provider

import (
	"net/http"
	"time"

	"github.com/okian/gridiron/pkg/logger"
)

// Option applies a configuration option to the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithTeamsURL sets the team list endpoint. Rosters are read from
// <teamsURL>/<teamID>/roster.
func WithTeamsURL(u string) Option {
	return func(h *HTTPClient) {
		if u != "" {
			h.teamsURL = u
		}
	}
}

// WithScoreboardURL sets the current-week scoreboard endpoint.
func WithScoreboardURL(u string) Option {
	return func(h *HTTPClient) {
		if u != "" {
			h.scoreboardURL = u
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *HTTPClient) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(h *HTTPClient) {
		if l != nil {
			h.log = l
		}
	}
}

// CacheOption applies a configuration option to the CachedClient.
type CacheOption func(*CachedClient)

// WithTTL sets how long cached payloads live.
func WithTTL(d time.Duration) CacheOption {
	return func(c *CachedClient) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithCacheLogger sets the logger.
func WithCacheLogger(l logger.Logger) CacheOption {
	return func(c *CachedClient) {
		if l != nil {
			c.log = l
		}
	}
}
