// Package client talks to the upstream market-data API and hands back
// canonical records. All payload-shape differences between upstream API
// versions are absorbed by the normalize package; transport concerns
// (auth, retry-on-401, duplicate fetch suppression) live here.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"marketlens/config"

	"golang.org/x/sync/singleflight"
)

// Client is an HTTP client for the upstream news/stock API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenStore
	group      singleflight.Group
}

// NewClient creates a client for the given base URL. A nil token store
// disables auth headers entirely.
func NewClient(baseURL string, tokens *TokenStore) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.UpstreamTimeout},
		tokens:     tokens,
	}
}

// NewClientFromEnv creates a client from UPSTREAM_API_URL, and wires a
// token store when UPSTREAM_AUTH_URL is set.
func NewClientFromEnv() *Client {
	baseURL := config.GetEnvOrDefault("UPSTREAM_API_URL", "http://localhost:9000")
	var tokens *TokenStore
	if refreshURL := config.GetEnvOrDefault("UPSTREAM_AUTH_URL", ""); refreshURL != "" {
		tokens = NewTokenStore(refreshURL, config.GetEnvOrDefault("UPSTREAM_API_KEY", ""))
	}
	return NewClient(baseURL, tokens)
}

// getJSON fetches a path and decodes the body into out. Concurrent calls
// for the same path are collapsed into a single upstream request; every
// caller decodes the shared body into its own destination.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	body, err, _ := c.group.Do(path, func() (interface{}, error) {
		return c.fetch(ctx, path)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body.([]byte), out)
}

// fetch performs one GET, retrying exactly once after a token refresh if
// the upstream rejects the current token.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	stale := ""
	if c.tokens != nil {
		stale = c.tokens.Token()
	}

	res, err := c.do(ctx, path)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		io.Copy(io.Discard, res.Body)
		res.Body.Close()

		if err := c.tokens.Refresh(ctx, stale); err != nil {
			return nil, fmt.Errorf("token refresh after 401: %w", err)
		}
		res, err = c.do(ctx, path)
		if err != nil {
			return nil, err
		}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("upstream returned status %d for %s", res.StatusCode, path)
	}
	return io.ReadAll(res.Body)
}

func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return c.httpClient.Do(req)
}
