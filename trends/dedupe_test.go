package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURLDropsTracking(t *testing.T) {
	assert.Equal(t,
		"https://example.com/ai/news?id=7",
		normalizeURL("HTTPS://Example.COM/ai/news/?utm_source=x&id=7&fbclid=abc#top"))
	assert.Equal(t, "", normalizeURL("  "))
	assert.Equal(t,
		normalizeURL("https://example.com/ai/news?id=7"),
		normalizeURL("https://example.com/ai/news/?id=7&utm_campaign=feed"))
	assert.Equal(t, "https://example.com", normalizeURL("https://example.com/"))
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []Headline{
		{Title: "OpenAI ships a new model", URL: "https://a.example/post?utm_medium=rss", Source: "A"},
		{Title: "Different headline", URL: "https://a.example/post", Source: "A mirror"},
		{Title: "openai  ships a NEW model", URL: "https://b.example/story", Source: "B"},
		{Title: "Unrelated", URL: "https://c.example/x", Source: "C"},
	}

	out := Dedupe(in)

	if assert.Len(t, out, 2) {
		assert.Equal(t, "A", out[0].Source)
		assert.Equal(t, "C", out[1].Source)
	}
	assert.Equal(t, in[0].Key(), Headline{Title: "OpenAI Ships a new model", URL: "https://a.example/post/"}.Key())
}
