// Package storage archives canonical records to S3 so dashboard history
// survives upstream retention windows.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"marketlens/types"
)

// ObjectPutter is the slice of S3 the archive needs; *S3 satisfies it.
type ObjectPutter interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}

// Archive writes normalized records to an S3 bucket as JSON objects.
type Archive struct {
	s3     ObjectPutter
	bucket string
	prefix string
}

// NewArchive creates an archive over an existing putter.
func NewArchive(s3 ObjectPutter, bucket, prefix string) *Archive {
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return &Archive{s3: s3, bucket: bucket, prefix: prefix}
}

// NewArchiveFromEnv returns an archive if configured via env, else nil.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX,
// S3_USE_PATH_STYLE=true. A nil *Archive is valid and skips archiving.
func NewArchiveFromEnv(ctx context.Context) *Archive {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		return nil
	}

	cfg := S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := NewS3(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archiving disabled)", err)
		return nil
	}
	return NewArchive(client, bucket, strings.TrimSpace(os.Getenv("S3_PREFIX")))
}

// ArchiveArticle writes one canonical article under articles/<id>.json.
func (a *Archive) ArchiveArticle(ctx context.Context, article *types.Article) error {
	if a == nil || article == nil {
		return nil
	}
	if article.ID == "" {
		return fmt.Errorf("cannot archive an article without an id")
	}

	b, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}

	key := a.prefix + "articles/" + article.ID + ".json"
	return a.s3.Put(ctx, a.bucket, key, bytes.NewReader(b), "application/json")
}

// ArchiveStock writes one canonical quote under stocks/<symbol>.json.
func (a *Archive) ArchiveStock(ctx context.Context, stock *types.Stock) error {
	if a == nil || stock == nil {
		return nil
	}
	if stock.Symbol == "" {
		return fmt.Errorf("cannot archive a stock without a symbol")
	}

	b, err := json.MarshalIndent(stock, "", "  ")
	if err != nil {
		return err
	}

	key := a.prefix + "stocks/" + stock.Symbol + ".json"
	return a.s3.Put(ctx, a.bucket, key, bytes.NewReader(b), "application/json")
}
