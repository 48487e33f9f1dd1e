package rssfeeds

// Default harvest settings
const (
	DefaultFeedPreset = "yahoo"
	DefaultCount      = 10
)

// FeedPresets maps friendly names to financial news RSS feed URLs
var FeedPresets = map[string]string{
	"yahoo":       "https://finance.yahoo.com/news/rssindex",
	"cnbc":        "https://www.cnbc.com/id/100003114/device/rss/rss.html",
	"marketwatch": "https://feeds.content.dowjones.io/public/rss/mw_topstories",
	"investing":   "https://www.investing.com/rss/news.rss",
}

// ResolveFeedURL resolves a feed identifier to a URL
// If the input is a preset name, returns the corresponding URL
// Otherwise, returns the input as-is (assuming it's a direct URL)
func ResolveFeedURL(feedInput string) string {
	if url, exists := FeedPresets[feedInput]; exists {
		return url
	}
	return feedInput
}
