package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"autoblog/config"
	"autoblog/frontmatter"
	"autoblog/types"
)

// ErrMalformedGeneration means the model's answer lacked the front matter
// and body structure an article needs.
var ErrMalformedGeneration = errors.New("content: malformed generation")

// Generation is the parsed model answer.
type Generation struct {
	Title       string
	Description string
	Tags        []string
	Body        string
}

type generatedFrontMatter struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Tags        tagList `yaml:"tags"`
}

// ParseGeneration reads `---\n<yaml>\n---\n<body>`, optionally wrapped in a
// code fence. A missing title falls back to a title built from keyword.
func ParseGeneration(text, keyword string) (*Generation, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if strings.HasPrefix(text, "```") {
		text = types.StripCodeFence(text)
	}

	var fm generatedFrontMatter
	body, err := frontmatter.Parse([]byte(text), &fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	gen := &Generation{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Tags:        []string(fm.Tags),
		Body:        strings.TrimSpace(string(body)),
	}
	if gen.Body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedGeneration)
	}
	if gen.Title == "" {
		gen.Title = config.DefaultTitlePrefix + keyword
	}
	return gen, nil
}

var (
	slugStrip = regexp.MustCompile(`[^A-Za-z0-9_\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// Slugify keeps ASCII word characters, kana, CJK ideographs and hyphens,
// turns whitespace runs into hyphens, and cuts the result to MaxSlugLength.
func Slugify(keyword string) string {
	slug := slugStrip.ReplaceAllString(keyword, "")
	slug = slugSpace.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = types.Truncate(slug, config.MaxSlugLength)
	if slug == "" {
		return "article"
	}
	return slug
}

// ArticleBase is the file name, without extension, for an article about
// keyword generated at t.
func ArticleBase(t time.Time, keyword string) string {
	return t.Format("2006-01-02") + "-" + Slugify(keyword)
}
