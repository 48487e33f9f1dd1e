package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// TokenStore holds the bearer token for the upstream API and refreshes it
// on demand. Refresh is serialized: when several in-flight requests hit a
// 401 at once, only the first triggers a refresh call, the rest observe
// the already-rotated token.
type TokenStore struct {
	mu         sync.Mutex
	token      string
	refreshURL string
	apiKey     string
	httpClient *http.Client
}

// NewTokenStore creates a store that refreshes against refreshURL using
// the given API key.
func NewTokenStore(refreshURL, apiKey string) *TokenStore {
	return &TokenStore{
		refreshURL: refreshURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns the current bearer token, which may be empty before the
// first refresh.
func (t *TokenStore) Token() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

// Refresh rotates the token, unless another goroutine already rotated it
// past stale, in which case the newer token is kept as-is.
func (t *TokenStore) Refresh(ctx context.Context, stale string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != stale {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"apiKey": t.apiKey})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token endpoint unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned status %d", res.StatusCode)
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if parsed.Token == "" {
		return fmt.Errorf("token endpoint returned an empty token")
	}

	t.token = parsed.Token
	return nil
}
