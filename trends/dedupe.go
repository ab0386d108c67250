package trends

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Key identifies a story across feeds: the same link with different
// tracking parameters, or the same title syndicated elsewhere, collapse to
// one key.
func (h Headline) Key() string {
	sum := sha256.Sum256([]byte(normalizeURL(h.URL) + "|" + normalizeTitle(h.Title)))
	return hex.EncodeToString(sum[:])
}

// Dedupe drops repeated stories, keeping the first occurrence. Headlines
// are matched on their normalized link, and on their title when both carry one.
func Dedupe(headlines []Headline) []Headline {
	seenURL := make(map[string]struct{}, len(headlines))
	seenTitle := make(map[string]struct{}, len(headlines))
	out := make([]Headline, 0, len(headlines))
	for _, h := range headlines {
		u := normalizeURL(h.URL)
		t := normalizeTitle(h.Title)
		if _, ok := seenURL[u]; ok && u != "" {
			continue
		}
		if _, ok := seenTitle[t]; ok && t != "" {
			continue
		}
		if u != "" {
			seenURL[u] = struct{}{}
		}
		if t != "" {
			seenTitle[t] = struct{}{}
		}
		out = append(out, h)
	}
	return out
}

func normalizeTitle(t string) string {
	return strings.Join(strings.Fields(strings.ToLower(t)), " ")
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	return strings.TrimRight(u.String(), "/")
}
