package types

import (
	"time"
	"unicode/utf8"
)

// Article represents a single generated blog post with its front matter and body.
// Articles are immutable once written; the filename embeds the generation date.
type Article struct {
	Filename    string    `json:"filename" yaml:"-"`
	Layout      string    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Date        time.Time `json:"date" yaml:"date"`
	Keyword     string    `json:"keyword" yaml:"keyword"`
	Body        string    `json:"body" yaml:"-"`
}

// Length returns the body length in characters.
func (a *Article) Length() int {
	if a == nil {
		return 0
	}
	return utf8.RuneCountInString(a.Body)
}

// Preview returns at most n characters of the body.
func (a *Article) Preview(n int) string {
	if a == nil {
		return ""
	}
	return Truncate(a.Body, n)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
