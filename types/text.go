package types

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\\n?(.*?)\\n?```")

// StripCodeFence returns the contents of the first fenced code block in text,
// or the trimmed text when there is no fence. Completion APIs wrap JSON and
// Markdown answers in fences more often than not.
func StripCodeFence(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
