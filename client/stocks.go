package client

import (
	"context"
	"fmt"
	"net/url"

	"marketlens/normalize"
	"marketlens/types"
)

// FetchStock retrieves the current quote for a symbol and normalizes it.
func (c *Client) FetchStock(ctx context.Context, symbol string) (*types.Stock, error) {
	var raw normalize.RawStock
	path := "/api/stocks/" + url.PathEscape(symbol)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch stock %s: %w", symbol, err)
	}
	return normalize.Stock(&raw), nil
}

// FetchHistory retrieves a quote with its historical series for the given
// window and normalizes it.
func (c *Client) FetchHistory(ctx context.Context, symbol string, days int) (*types.Stock, error) {
	var raw normalize.RawStock
	path := fmt.Sprintf("/api/stocks/%s/history?days=%d", url.PathEscape(symbol), days)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	return normalize.Stock(&raw), nil
}
