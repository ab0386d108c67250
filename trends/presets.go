package trends

// DefaultFeeds are used when TREND_FEEDS is unset.
var DefaultFeeds = []string{"tr", "hn-ai"}

// FeedPresets maps friendly names to RSS feed URLs
var FeedPresets = map[string]string{
	"tr":       "https://www.technologyreview.com/feed/",
	"hn-ai":    "https://hnrss.org/newest?q=AI",
	"verge-ai": "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml",
	"itmedia":  "https://rss.itmedia.co.jp/rss/2.0/aiplus.xml",
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
