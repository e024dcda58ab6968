// Package provider fetches box scores, team lists, rosters and the scoreboard
// from the upstream sports API.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/okian/gridiron/internal/domain/boxscore"
	"github.com/okian/gridiron/pkg/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gridiron/1.0 (+stat pipeline)"
	maxBodyBytes     = 16 << 20
	wrapperKey       = "gamepackageJSON"

	DefaultTeamsURL      = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams"
	DefaultScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
)

// Client fetches one game's box score.
type Client interface {
	FetchGame(ctx context.Context, gameID string) (*boxscore.Payload, error)
}

// RawFetcher returns a validated, unwrapped payload as JSON bytes.
type RawFetcher interface {
	FetchRaw(ctx context.Context, gameID string) ([]byte, error)
}

// HTTPClient implements Client against a summary endpoint taking ?event=<id>.
// The same client reads the league endpoints in league.go.
type HTTPClient struct {
	baseURL       string
	teamsURL      string
	scoreboardURL string
	http          *http.Client
	timeout       time.Duration
	userAgent     string
	log           logger.Logger
}

// NewHTTPClient creates a client for baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:       baseURL,
		teamsURL:      DefaultTeamsURL,
		scoreboardURL: DefaultScoreboardURL,
		http:          &http.Client{},
		timeout:       defaultTimeout,
		userAgent:     defaultUserAgent,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchGame implements Client.
func (c *HTTPClient) FetchGame(ctx context.Context, gameID string) (*boxscore.Payload, error) {
	raw, err := c.FetchRaw(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return DecodePayload(raw)
}

// FetchRaw implements RawFetcher.
func (c *HTTPClient) FetchRaw(ctx context.Context, gameID string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrTransport, err)
	}
	q := u.Query()
	q.Set("event", gameID)
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String(), "game "+gameID)
	if err != nil {
		return nil, err
	}
	raw, err := unwrap(body)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}
	return raw, nil
}

// get issues one GET and returns the body of a 200 response. what names the
// resource in errors and logs.
func (c *HTTPClient) get(ctx context.Context, rawURL, what string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, what, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrTransport, what, err)
	}
	c.log.Debug(ctx, "provider response",
		logger.String("resource", what),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
		logger.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %d", ErrStatus, what, resp.StatusCode)
	}
	return body, nil
}

// unwrap returns the game package object, validating that it carries a
// header and a box score.
func unwrap(body []byte) ([]byte, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if inner, ok := top[wrapperKey]; ok {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '"' {
			var s string
			if err := json.Unmarshal(inner, &s); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrDecode, wrapperKey, err)
			}
			inner = []byte(s)
		}
		top = nil
		if err := json.Unmarshal(inner, &top); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, wrapperKey, err)
		}
		body = inner
	}
	for _, key := range []string{"header", "boxscore"} {
		v, ok := top[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %s", ErrUnexpectedShape, key)
		}
	}
	return body, nil
}

// DecodePayload decodes unwrapped payload bytes into the typed schema.
func DecodePayload(raw []byte) (*boxscore.Payload, error) {
	var p boxscore.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return &p, nil
}
