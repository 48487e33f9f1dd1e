// Package orchestrator runs the end-to-end harvest cycle that feeds the
// dashboard: fetch finance feeds, extract content, score sentiment, then
// hand the raw payloads to the ingest pipeline.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"marketlens/cache"
	"marketlens/config"
	"marketlens/kafka"
	"marketlens/normalize"
	"marketlens/rssfeeds"
	"marketlens/sentiment"
	"marketlens/storage"
	"marketlens/types"

	"github.com/joho/godotenv"
)

// RunOnce executes a single cycle: fetch feeds, extract, score sentiment,
// publish to Kafka when configured or normalize and store directly.
func RunOnce(ctx context.Context) error {
	// Initialize logging
	log.SetOutput(os.Stderr)
	log.Println("=== MarketLens Harvester ===")

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	feedURL := rssfeeds.ResolveFeedURL(config.GetEnvOrDefault("FEED", rssfeeds.DefaultFeedPreset))
	count := config.GetEnvInt("FEED_COUNT", rssfeeds.DefaultCount)

	// Step 1: Fetch the feed as raw legacy-shaped payloads
	log.Printf("Fetching feed: %s", feedURL)
	raws, err := rssfeeds.FetchFeed(feedURL, count)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	log.Printf("Fetched %d articles from feed", len(raws))

	// Step 2: Fill empty bodies via readability extraction
	log.Printf("Extracting content using %d workers...", rssfeeds.WorkerCount)
	rssfeeds.ExtractAllContent(raws)

	// Step 3: Attach sentiment blocks where the scorer is configured
	scorer := sentiment.NewDefaultScorer()
	if scorer == nil {
		log.Println("Sentiment scoring not configured; payloads keep no sentiment block")
	} else {
		log.Println("Scoring sentiment...")
		scorer.AttachAll(ctx, raws)
	}

	// Step 4a: Publish raw payloads to Kafka if configured
	if brokers := config.GetEnvOrDefault("KAFKA_BROKERS", ""); brokers != "" {
		return publishAll(brokers, raws)
	}

	// Step 4b: No broker - normalize and store directly
	return storeAll(ctx, raws)
}

// publishAll sends raw payloads to the ingest topic; the consumer side
// normalizes them.
func publishAll(brokers string, raws []*normalize.RawArticle) error {
	topic := config.GetEnvOrDefault("KAFKA_TOPIC", "articles.raw")
	producer, err := kafka.NewProducer(strings.Split(brokers, ","), topic)
	if err != nil {
		return fmt.Errorf("failed to create producer: %w", err)
	}
	defer producer.Close()

	published := 0
	for i, raw := range raws {
		key := raw.MongoID
		if key == "" {
			key = raw.ArticleURL
		}
		if err := producer.Publish(key, raw); err != nil {
			log.Printf("  [%d/%d] publish failed: %v", i+1, len(raws), err)
			continue
		}
		published++
	}
	log.Printf("Published %d/%d raw payloads to %s", published, len(raws), topic)
	log.Println("=== Harvest Run Complete ===")
	return nil
}

// storeAll normalizes the payloads and writes them through cache and
// archive, skipping whichever backend is not configured.
func storeAll(ctx context.Context, raws []*normalize.RawArticle) error {
	store, err := cache.NewFromEnv()
	if err != nil {
		log.Printf("Warning: cache unavailable: %v (caching skipped)", err)
		store = nil
	}
	defer store.Close()

	archive := storage.NewArchiveFromEnv(ctx)
	if archive == nil {
		log.Println("S3 not configured; skipping archive")
	}

	stored := 0
	for i, raw := range raws {
		article := normalize.Article(raw)
		if article.ID == "" {
			if article.URL == "" {
				log.Printf("  [%d/%d] skipping payload with no id or url", i+1, len(raws))
				continue
			}
			article.ID = types.GenerateID(article.URL)
		}

		store.SetArticle(ctx, article)
		if err := archive.ArchiveArticle(ctx, article); err != nil {
			log.Printf("  [%d/%d] archive failed for %s: %v", i+1, len(raws), article.ID, err)
			continue
		}
		stored++
	}

	log.Println("\n=== Harvest Summary ===")
	log.Printf("Total Articles:  %d", len(raws))
	log.Printf("Stored Articles: %d", stored)
	log.Println("=======================")
	return nil
}
