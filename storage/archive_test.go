package storage

import (
	"context"
	"io"
	"testing"

	"marketlens/types"
)

type capturedPut struct {
	bucket, key, contentType string
}

type stubPutter struct {
	puts []capturedPut
}

func (s *stubPutter) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	s.puts = append(s.puts, capturedPut{bucket: bucket, key: key, contentType: contentType})
	return nil
}

func TestArchiveArticleKeyLayout(t *testing.T) {
	putter := &stubPutter{}
	a := NewArchive(putter, "bkt", "/snapshots/")

	err := a.ArchiveArticle(context.Background(), &types.Article{ID: "a1"})
	if err != nil {
		t.Fatalf("ArchiveArticle: %v", err)
	}

	if len(putter.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(putter.puts))
	}
	got := putter.puts[0]
	if got.key != "snapshots/articles/a1.json" {
		t.Errorf("key: got %q, want prefix trimmed and rejoined", got.key)
	}
	if got.contentType != "application/json" {
		t.Errorf("content type: got %q", got.contentType)
	}
}

func TestArchiveStockKeyLayout(t *testing.T) {
	putter := &stubPutter{}
	a := NewArchive(putter, "bkt", "")

	if err := a.ArchiveStock(context.Background(), &types.Stock{Symbol: "AAPL"}); err != nil {
		t.Fatalf("ArchiveStock: %v", err)
	}
	if putter.puts[0].key != "stocks/AAPL.json" {
		t.Errorf("key: got %q", putter.puts[0].key)
	}
}

func TestArchiveRequiresIdentity(t *testing.T) {
	a := NewArchive(&stubPutter{}, "bkt", "")
	if err := a.ArchiveArticle(context.Background(), &types.Article{}); err == nil {
		t.Error("expected an error for an article without an id")
	}
	if err := a.ArchiveStock(context.Background(), &types.Stock{}); err == nil {
		t.Error("expected an error for a stock without a symbol")
	}
}

func TestNilArchiveIsNoop(t *testing.T) {
	var a *Archive
	if err := a.ArchiveArticle(context.Background(), &types.Article{ID: "a1"}); err != nil {
		t.Errorf("nil archive should be a no-op, got %v", err)
	}
}
