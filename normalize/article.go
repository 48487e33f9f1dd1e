package normalize

import "marketlens/types"

// RawArticle is the permissive decode shape for a news payload. Every
// alias any upstream API version used is accepted; absent fields decode
// to their zero value and resolve through the alias chain in Article.
type RawArticle struct {
	MongoID         string        `json:"_id"`
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Content         string        `json:"content"`
	Description     string        `json:"description"`
	Source          string        `json:"source"`
	URL             string        `json:"url"`
	ArticleURL      string        `json:"article_url"`
	PublishedDate   string        `json:"publishedDate"`
	PublishedSnake  string        `json:"published_date"`
	PublishedUTC    string        `json:"published_utc"`
	CrawledDate     string        `json:"crawledDate"`
	CrawledSnake    string        `json:"crawled_date"`
	Sentiment       *RawSentiment `json:"sentiment"`
	Keywords        []string      `json:"keywords"`
}

// RawSentiment accepts both sentiment representations: the legacy single
// label/score pair and the nested-or-flat positive/neutral/negative
// breakdown. Pointer fields distinguish "absent" from an explicit zero.
type RawSentiment struct {
	Label    string          `json:"label"`
	Score    *float64        `json:"score"`
	Scores   *types.ScoreSet `json:"scores"`
	Positive *float64        `json:"positive"`
	Neutral  *float64        `json:"neutral"`
	Negative *float64        `json:"negative"`
}

// Article converts one backend article payload into the canonical record.
// It never fails: missing fields resolve through the alias chain to a
// default, and a nil input passes through as nil rather than an error.
func Article(raw *RawArticle) *types.Article {
	if raw == nil {
		return nil
	}

	keywords := make([]string, len(raw.Keywords))
	copy(keywords, raw.Keywords)

	a := &types.Article{
		ID:            firstString(raw.MongoID, raw.ID),
		Title:         raw.Title,
		Content:       firstString(raw.Content, raw.Description),
		Source:        raw.Source,
		URL:           firstString(raw.URL, raw.ArticleURL),
		PublishedDate: firstString(raw.PublishedDate, raw.PublishedSnake, raw.PublishedUTC),
		CrawledDate:   firstString(raw.CrawledDate, raw.CrawledSnake),
		Keywords:      keywords,
	}

	// A missing sentiment block stays missing; zeros are only defaulted
	// for fields inside a block the source actually sent.
	if raw.Sentiment != nil {
		a.Sentiment = sentiment(raw.Sentiment)
	}
	return a
}

// Articles normalizes a slice, preserving nil pass-through per element.
func Articles(raws []*RawArticle) []*types.Article {
	out := make([]*types.Article, len(raws))
	for i, raw := range raws {
		out[i] = Article(raw)
	}
	return out
}

func sentiment(raw *RawSentiment) *types.SentimentScores {
	s := &types.SentimentScores{
		Label:  raw.Label,
		Score:  raw.Score,
		Scores: raw.Scores,
	}

	// Nested scores win over the flat fields of the same name.
	var nested types.ScoreSet
	if raw.Scores != nil {
		nested = *raw.Scores
	}
	s.Positive = firstFloat(nested.Positive, raw.Positive)
	s.Neutral = firstFloat(nested.Neutral, raw.Neutral)
	s.Negative = firstFloat(nested.Negative, raw.Negative)
	return s
}
