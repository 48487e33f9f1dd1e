package kafka

import (
	"context"
	"fmt"
	"log"

	"marketlens/cache"
	"marketlens/normalize"
	"marketlens/storage"
	"marketlens/types"
)

// NewIngestHandler returns a handler that normalizes raw article payloads
// off the topic and writes them through the cache and archive. Malformed
// or unidentifiable payloads are marked and skipped; archive failures are
// left unmarked so the message is retried.
func NewIngestHandler(store *cache.Cache, archive *storage.Archive) MessageHandler {
	return &TypedMessageHandler[normalize.RawArticle]{
		AlwaysMark: true,
		Validate: func(raw *normalize.RawArticle) bool {
			return raw.MongoID != "" || raw.ID != "" || raw.URL != "" || raw.ArticleURL != ""
		},
		Process: func(ctx context.Context, raw *normalize.RawArticle) error {
			article := normalize.Article(raw)
			if article.ID == "" {
				article.ID = types.GenerateID(article.URL)
			}

			store.SetArticle(ctx, article)
			if err := archive.ArchiveArticle(ctx, article); err != nil {
				return fmt.Errorf("failed to archive article %s: %w", article.ID, err)
			}

			log.Printf("Ingested article %s (%q)", article.ID, article.Title)
			return nil
		},
	}
}
