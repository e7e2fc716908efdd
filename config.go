package main

// FeedPresets maps friendly names to release feed URLs, selectable via
// the RELEASE_FEEDS env var.
var FeedPresets = map[string]string{
	"showrss": "https://showrss.info/other/all.rss",
	"nyaa":    "https://nyaa.si/?page=rss",
	"fitgirl": "https://fitgirl-repacks.site/feed/",
	"scnsrc":  "https://www.scnsrc.me/feed/",
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
