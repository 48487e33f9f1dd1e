package kafka

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"marketlens/storage"
	"marketlens/types"
)

type recordedPut struct {
	bucket string
	key    string
	body   string
}

type fakePutter struct {
	puts []recordedPut
	err  error
}

func (f *fakePutter) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	if f.err != nil {
		return f.err
	}
	b, _ := io.ReadAll(body)
	f.puts = append(f.puts, recordedPut{bucket: bucket, key: key, body: string(b)})
	return nil
}

func TestIngestHandlerNormalizesAndArchives(t *testing.T) {
	putter := &fakePutter{}
	handler := NewIngestHandler(nil, storage.NewArchive(putter, "news-archive", ""))

	payload := []byte(`{
		"_id": "a1",
		"title": "T",
		"description": "body",
		"published_utc": "2025-01-01"
	}`)

	shouldMark, err := handler.HandleMessage(context.Background(), payload)
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !shouldMark {
		t.Error("expected a processed message to be marked")
	}

	if len(putter.puts) != 1 {
		t.Fatalf("expected 1 archived object, got %d", len(putter.puts))
	}
	put := putter.puts[0]
	if put.bucket != "news-archive" || put.key != "articles/a1.json" {
		t.Errorf("unexpected destination %s/%s", put.bucket, put.key)
	}

	var archived types.Article
	if err := json.Unmarshal([]byte(put.body), &archived); err != nil {
		t.Fatalf("archived body is not valid JSON: %v", err)
	}
	if archived.ID != "a1" || archived.Content != "body" || archived.PublishedDate != "2025-01-01" {
		t.Errorf("archived record not normalized: %+v", archived)
	}
}

func TestIngestHandlerGeneratesIDFromURL(t *testing.T) {
	putter := &fakePutter{}
	handler := NewIngestHandler(nil, storage.NewArchive(putter, "news-archive", ""))

	payload := []byte(`{"article_url": "https://example.com/a", "title": "T"}`)
	if _, err := handler.HandleMessage(context.Background(), payload); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}

	want := types.GenerateID("https://example.com/a")
	if len(putter.puts) != 1 || !strings.Contains(putter.puts[0].key, want) {
		t.Errorf("expected archive key containing generated id %s, got %+v", want, putter.puts)
	}
}

func TestIngestHandlerSkipsMalformedPayload(t *testing.T) {
	putter := &fakePutter{}
	handler := NewIngestHandler(nil, storage.NewArchive(putter, "news-archive", ""))

	shouldMark, err := handler.HandleMessage(context.Background(), []byte(`{not json`))
	if err != nil {
		t.Fatalf("malformed payloads must not error: %v", err)
	}
	if !shouldMark {
		t.Error("malformed payloads should be marked so they are not retried")
	}
	if len(putter.puts) != 0 {
		t.Errorf("malformed payload must not be archived, got %+v", putter.puts)
	}
}

func TestIngestHandlerSkipsUnidentifiablePayload(t *testing.T) {
	putter := &fakePutter{}
	handler := NewIngestHandler(nil, storage.NewArchive(putter, "news-archive", ""))

	shouldMark, err := handler.HandleMessage(context.Background(), []byte(`{"title": "no id or url"}`))
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if !shouldMark {
		t.Error("unidentifiable payloads should be marked so they are not retried")
	}
	if len(putter.puts) != 0 {
		t.Errorf("unidentifiable payload must not be archived, got %+v", putter.puts)
	}
}

func TestIngestHandlerRetriesOnArchiveFailure(t *testing.T) {
	putter := &fakePutter{err: io.ErrUnexpectedEOF}
	handler := NewIngestHandler(nil, storage.NewArchive(putter, "news-archive", ""))

	shouldMark, err := handler.HandleMessage(context.Background(), []byte(`{"id": "a1"}`))
	if err == nil {
		t.Fatal("expected an error when archiving fails")
	}
	if shouldMark {
		t.Error("a failed archive must leave the message unmarked for retry")
	}
}
