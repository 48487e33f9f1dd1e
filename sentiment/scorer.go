// Package sentiment attaches a sentiment block to harvested payloads that
// arrive without one. Scoring happens before normalization, so the
// normalizer's contract is untouched: payloads the scorer never saw keep
// no sentiment block at all.
package sentiment

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"marketlens/normalize"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Anchor texts the article embedding is compared against. One per class.
var anchors = []string{
	"excellent results, strong growth, markets rally on upbeat outlook",
	"routine update, outlook unchanged, markets flat and quiet",
	"heavy losses, profit warning, markets plunge on grim outlook",
}

// embedder abstracts the embedding call so scoring is testable offline.
type embedder interface {
	embedTexts(ctx context.Context, texts []string) ([][]float64, error)
	modelName() string
}

// Scorer derives positive/neutral/negative scores for a piece of text.
type Scorer struct {
	embedder embedder
}

// NewDefaultScorer returns a scorer if configured via env, else nil.
// Currently supports Cohere when COHERE_API_KEY is set. A nil *Scorer is
// valid and disables sentiment enrichment.
func NewDefaultScorer() *Scorer {
	cohereKey := os.Getenv("COHERE_API_KEY")
	if cohereKey == "" {
		return nil
	}

	model := os.Getenv("COHERE_EMBED_MODEL")
	if model == "" {
		model = "embed-english-v3.0"
	}

	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere API
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(cohereKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Scorer{embedder: &cohereEmbedder{client: client, model: model}}
}

// Score embeds the text alongside the class anchors and converts the
// cosine similarities into a sentiment block. The three scores are a
// softmax over similarities; the label and single score carry the
// winning class.
func (s *Scorer) Score(ctx context.Context, text string) (*normalize.RawSentiment, error) {
	if text == "" {
		return nil, errors.New("cannot score empty text")
	}

	texts := append([]string{text}, anchors...)
	embeddings, err := s.embedder.embedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, errors.New("embedding count mismatch")
	}

	sims := make([]float64, len(anchors))
	for i := range anchors {
		sims[i] = cosine(embeddings[0], embeddings[i+1])
	}
	scores := softmax(sims)

	labels := []string{"positive", "neutral", "negative"}
	best := 0
	for i, v := range scores {
		if v > scores[best] {
			best = i
		}
	}

	return &normalize.RawSentiment{
		Label:    labels[best],
		Score:    &scores[best],
		Positive: &scores[0],
		Neutral:  &scores[1],
		Negative: &scores[2],
	}, nil
}

// AttachAll scores every payload that has no sentiment block yet,
// using title + description as the scored text. Failures are logged and
// leave the payload without a block.
func (s *Scorer) AttachAll(ctx context.Context, raws []*normalize.RawArticle) {
	if s == nil {
		return
	}
	for _, raw := range raws {
		if raw == nil || raw.Sentiment != nil {
			continue
		}
		text := raw.Title
		if raw.Description != "" {
			text = text + "\n" + raw.Description
		}
		block, err := s.Score(ctx, text)
		if err != nil {
			log.Printf("Warning: sentiment scoring failed for %s: %v", raw.ArticleURL, err)
			continue
		}
		raw.Sentiment = block
	}
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// softmax sharpens the similarity gaps; embeddings of related texts sit
// in a narrow cosine band, so the raw values need spreading.
func softmax(sims []float64) []float64 {
	const temperature = 10

	max := sims[0]
	for _, v := range sims[1:] {
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(sims))
	var sum float64
	for i, v := range sims {
		out[i] = math.Exp((v - max) * temperature)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// cohereEmbedder implements embedder using the Cohere Embed API (v2)
// Docs: https://docs.cohere.com/reference/embed
type cohereEmbedder struct {
	client *cohereclient.Client
	model  string
}

func (c *cohereEmbedder) modelName() string { return c.model }

func (c *cohereEmbedder) embedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.V2.Embed(
		ctx,
		&cohere.V2EmbedRequest{
			Texts:          texts,
			Model:          c.model,
			InputType:      cohere.EmbedInputTypeClassification,
			EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("cohere embed error: %w", err)
	}
	if resp == nil || resp.Embeddings == nil || resp.Embeddings.Float == nil {
		return nil, errors.New("cohere embed returned no float embeddings")
	}
	return resp.Embeddings.Float, nil
}
