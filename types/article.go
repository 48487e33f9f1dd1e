package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// Article is the canonical news record consumed by the dashboard,
// regardless of which backend payload version produced it.
type Article struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Source        string           `json:"source"`
	URL           string           `json:"url"`
	PublishedDate string           `json:"publishedDate"`
	CrawledDate   string           `json:"crawledDate,omitempty"`
	Sentiment     *SentimentScores `json:"sentiment,omitempty"`
	Keywords      []string         `json:"keywords"`
}

// SentimentScores holds the positive/neutral/negative breakdown attached
// to an article. Label, Score and Scores carry the legacy single-score
// representation through unmodified when the source had one.
type SentimentScores struct {
	Label    string    `json:"label,omitempty"`
	Score    *float64  `json:"score,omitempty"`
	Scores   *ScoreSet `json:"scores,omitempty"`
	Positive float64   `json:"positive"`
	Neutral  float64   `json:"neutral"`
	Negative float64   `json:"negative"`
}

// ScoreSet is the nested score object some payload versions carry.
type ScoreSet struct {
	Positive *float64 `json:"positive,omitempty"`
	Neutral  *float64 `json:"neutral,omitempty"`
	Negative *float64 `json:"negative,omitempty"`
}

// GenerateID creates a stable ID from a URL for records that arrive
// without one (harvested feeds, legacy payloads).
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
