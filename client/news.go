package client

import (
	"context"
	"fmt"
	"net/url"

	"marketlens/normalize"
	"marketlens/types"
)

// FetchNews retrieves up to limit articles and normalizes them.
func (c *Client) FetchNews(ctx context.Context, limit int) ([]*types.Article, error) {
	var raws []*normalize.RawArticle
	path := fmt.Sprintf("/api/news?limit=%d", limit)
	if err := c.getJSON(ctx, path, &raws); err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	return normalize.Articles(raws), nil
}

// FetchArticle retrieves a single article by ID and normalizes it.
func (c *Client) FetchArticle(ctx context.Context, id string) (*types.Article, error) {
	var raw normalize.RawArticle
	path := "/api/news/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch article %s: %w", id, err)
	}
	return normalize.Article(&raw), nil
}
