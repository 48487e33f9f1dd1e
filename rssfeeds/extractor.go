package rssfeeds

import (
	"fmt"
	"log"
	"sync"
	"time"

	"marketlens/normalize"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// ExtractAllContent fills empty descriptions by fetching the article page
// through readability, using a fixed worker pool. Failures are logged and
// leave the payload as harvested.
func ExtractAllContent(articles []*normalize.RawArticle) {
	var wg sync.WaitGroup
	articleChan := make(chan *normalize.RawArticle, len(articles))

	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for article := range articleChan {
				if err := extractContent(article); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, article.ArticleURL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, article := range articles {
		if article.Description != "" {
			continue
		}
		wg.Add(1)
		articleChan <- article
	}

	wg.Wait()
	close(articleChan)
}

// extractContent fetches and extracts readable content for a single payload
func extractContent(article *normalize.RawArticle) error {
	if article.ArticleURL == "" {
		return fmt.Errorf("article URL is empty")
	}

	extracted, err := readability.FromURL(article.ArticleURL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	article.Description = extracted.TextContent
	if article.Title == "" {
		article.Title = extracted.Title
	}

	log.Printf("Extracted: %s", article.Title)
	return nil
}
