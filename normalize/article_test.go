package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"marketlens/types"
)

func floatPtr(v float64) *float64 { return &v }

func decodeArticle(t *testing.T, payload string) *RawArticle {
	t.Helper()
	var raw RawArticle
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	return &raw
}

func TestArticleNilInput(t *testing.T) {
	if got := Article(nil); got != nil {
		t.Fatalf("expected nil output for nil input, got %+v", got)
	}
}

func TestArticlePrimaryFieldsWin(t *testing.T) {
	raw := decodeArticle(t, `{
		"_id": "legacy-id",
		"id": "canonical-id",
		"title": "Fed holds rates",
		"content": "primary body",
		"description": "legacy body",
		"source": "Reuters",
		"url": "https://example.com/a",
		"article_url": "https://legacy.example.com/a",
		"publishedDate": "2025-03-01",
		"published_date": "2025-02-28",
		"published_utc": "2025-02-27",
		"crawledDate": "2025-03-02",
		"crawled_date": "2025-03-01"
	}`)

	got := Article(raw)
	if got.ID != "legacy-id" {
		t.Errorf("id: got %q, want %q", got.ID, "legacy-id")
	}
	if got.Content != "primary body" {
		t.Errorf("content: got %q, want %q", got.Content, "primary body")
	}
	if got.URL != "https://example.com/a" {
		t.Errorf("url: got %q", got.URL)
	}
	if got.PublishedDate != "2025-03-01" {
		t.Errorf("publishedDate: got %q", got.PublishedDate)
	}
	if got.CrawledDate != "2025-03-02" {
		t.Errorf("crawledDate: got %q", got.CrawledDate)
	}
}

func TestArticleLegacyAliasFallback(t *testing.T) {
	raw := decodeArticle(t, `{
		"id": "a2",
		"description": "legacy body",
		"article_url": "https://legacy.example.com/a",
		"published_utc": "2025-01-15"
	}`)

	got := Article(raw)
	if got.ID != "a2" {
		t.Errorf("id: got %q, want %q", got.ID, "a2")
	}
	if got.Content != "legacy body" {
		t.Errorf("content: got %q, want legacy description", got.Content)
	}
	if got.URL != "https://legacy.example.com/a" {
		t.Errorf("url: got %q, want legacy article_url", got.URL)
	}
	if got.PublishedDate != "2025-01-15" {
		t.Errorf("publishedDate: got %q, want published_utc value", got.PublishedDate)
	}
}

func TestArticlePublishedDateChainOrder(t *testing.T) {
	raw := decodeArticle(t, `{"published_date": "2025-02-28", "published_utc": "2025-02-27"}`)
	if got := Article(raw).PublishedDate; got != "2025-02-28" {
		t.Errorf("publishedDate: got %q, want published_date before published_utc", got)
	}
}

func TestArticleMissingFieldsDefaultEmpty(t *testing.T) {
	got := Article(decodeArticle(t, `{}`))
	if got == nil {
		t.Fatal("expected a record for an empty payload")
	}
	if got.ID != "" || got.Title != "" || got.Content != "" || got.Source != "" || got.URL != "" {
		t.Errorf("string fields should default to empty, got %+v", got)
	}
	if got.Sentiment != nil {
		t.Errorf("sentiment should be absent when the payload has none, got %+v", got.Sentiment)
	}
	if got.Keywords == nil || len(got.Keywords) != 0 {
		t.Errorf("keywords should default to an empty slice, got %#v", got.Keywords)
	}
}

func TestArticleSentimentAbsentStaysAbsent(t *testing.T) {
	raw := decodeArticle(t, `{"id": "a3", "title": "no sentiment here"}`)
	if got := Article(raw); got.Sentiment != nil {
		t.Fatalf("sentiment must not be defaulted to zeros, got %+v", got.Sentiment)
	}
}

func TestArticlePartialNestedScores(t *testing.T) {
	raw := decodeArticle(t, `{"id": "a4", "sentiment": {"scores": {"positive": 0.5}}}`)
	got := Article(raw)
	if got.Sentiment == nil {
		t.Fatal("sentiment block present in source, expected it on output")
	}
	if got.Sentiment.Positive != 0.5 {
		t.Errorf("positive: got %v, want 0.5", got.Sentiment.Positive)
	}
	if got.Sentiment.Neutral != 0 || got.Sentiment.Negative != 0 {
		t.Errorf("missing sub-fields should default to 0, got %+v", got.Sentiment)
	}
}

func TestArticleNestedScoresWinOverFlat(t *testing.T) {
	raw := decodeArticle(t, `{"sentiment": {"positive": 0.9, "scores": {"positive": 0.2}}}`)
	if got := Article(raw).Sentiment.Positive; got != 0.2 {
		t.Errorf("positive: got %v, want nested scores value 0.2", got)
	}
}

func TestArticleFlatScoresUsedWhenNoNested(t *testing.T) {
	raw := decodeArticle(t, `{"sentiment": {"positive": 0.1, "neutral": 0.3, "negative": 0.6}}`)
	got := Article(raw).Sentiment
	if got.Positive != 0.1 || got.Neutral != 0.3 || got.Negative != 0.6 {
		t.Errorf("flat scores not preserved: %+v", got)
	}
}

func TestArticleLegacyLabelScorePassthrough(t *testing.T) {
	raw := decodeArticle(t, `{"sentiment": {"label": "positive", "score": 0.82}}`)
	got := Article(raw).Sentiment
	if got.Label != "positive" {
		t.Errorf("label: got %q", got.Label)
	}
	if got.Score == nil || *got.Score != 0.82 {
		t.Errorf("score: got %v, want 0.82", got.Score)
	}
}

func TestArticleConcreteLegacyScenario(t *testing.T) {
	raw := decodeArticle(t, `{
		"_id": "a1",
		"title": "T",
		"description": "body",
		"published_utc": "2025-01-01",
		"sentiment": {"scores": {"positive": 0.5}}
	}`)

	want := &types.Article{
		ID:            "a1",
		Title:         "T",
		Content:       "body",
		Source:        "",
		URL:           "",
		PublishedDate: "2025-01-01",
		CrawledDate:   "",
		Sentiment: &types.SentimentScores{
			Positive: 0.5,
			Neutral:  0,
			Negative: 0,
			Scores:   &types.ScoreSet{Positive: floatPtr(0.5)},
		},
		Keywords: []string{},
	}

	got := Article(raw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalized record mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestArticleIdempotent(t *testing.T) {
	first := Article(decodeArticle(t, `{
		"_id": "a1",
		"title": "T",
		"description": "body",
		"published_utc": "2025-01-01",
		"keywords": ["rates", "fed"],
		"sentiment": {"scores": {"positive": 0.5}, "negative": 0.25}
	}`))

	// Re-decode the canonical output as if it were a fresh payload.
	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal canonical record: %v", err)
	}
	second := Article(decodeArticle(t, string(encoded)))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestArticlesSliceNilPassthrough(t *testing.T) {
	raws := []*RawArticle{nil, {ID: "a5"}}
	got := Articles(raws)
	if len(got) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(got))
	}
	if got[0] != nil {
		t.Errorf("nil element should stay nil, got %+v", got[0])
	}
	if got[1] == nil || got[1].ID != "a5" {
		t.Errorf("second element: got %+v", got[1])
	}
}

func TestArticleKeywordsCopied(t *testing.T) {
	raw := &RawArticle{ID: "a6", Keywords: []string{"oil"}}
	got := Article(raw)
	raw.Keywords[0] = "mutated"
	if got.Keywords[0] != "oil" {
		t.Errorf("output must not share the input's keyword slice")
	}
}
