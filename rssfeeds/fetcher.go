// Package rssfeeds harvests financial news feeds into raw article
// payloads. Harvested records deliberately use the legacy upstream
// aliases (_id, description, article_url, published_utc): they enter the
// pipeline through the same normalization path as backend payloads.
package rssfeeds

import (
	"fmt"
	"time"

	"marketlens/normalize"
	"marketlens/types"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses an RSS/Atom feed, returning raw article payloads
func FetchFeed(feedURL string, maxCount int) ([]*normalize.RawArticle, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	articles := make([]*normalize.RawArticle, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]

		// Use GUID if available, otherwise generate from URL
		id := item.GUID
		if id == "" && item.Link != "" {
			id = types.GenerateID(item.Link)
		}

		published := ""
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC().Format(time.RFC3339)
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed.UTC().Format(time.RFC3339)
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}

		keywords := make([]string, len(item.Categories))
		copy(keywords, item.Categories)

		articles = append(articles, &normalize.RawArticle{
			MongoID:      id,
			Title:        item.Title,
			Description:  description,
			Source:       feed.Title,
			ArticleURL:   item.Link,
			PublishedUTC: published,
			CrawledSnake: time.Now().UTC().Format(time.RFC3339),
			Keywords:     keywords,
		})
	}

	return articles, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
