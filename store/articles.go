package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoblog/frontmatter"
	"autoblog/types"
)

// articleFrontMatter reads leniently: older files may carry dates in
// formats time.Time cannot decode.
type articleFrontMatter struct {
	Layout      string   `yaml:"layout"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	Keyword     string   `yaml:"keyword"`
}

// ListArticles returns article file names in filename (creation) order.
func (s *Store) ListArticles() ([]string, error) {
	return listNames(s.PostsDir(), ".md")
}

// LatestArticle returns the most recently created article, or nil.
func (s *Store) LatestArticle() (*types.Article, error) {
	names, err := s.ListArticles()
	if err != nil || len(names) == 0 {
		return nil, err
	}
	return s.ReadArticle(names[len(names)-1])
}

// ReadArticle parses one article file.
func (s *Store) ReadArticle(name string) (*types.Article, error) {
	path := filepath.Join(s.PostsDir(), name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StateParseError{Path: path, Cause: err}
	}
	var fm articleFrontMatter
	body, err := frontmatter.Parse(data, &fm)
	if err != nil {
		return nil, &StateParseError{Path: path, Cause: err}
	}
	a := &types.Article{
		Filename:    name,
		Layout:      fm.Layout,
		Title:       fm.Title,
		Description: fm.Description,
		Tags:        fm.Tags,
		Keyword:     fm.Keyword,
		Body:        strings.TrimSpace(string(body)),
	}
	if a.Title == "" {
		a.Title = name
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(fm.Date)); err == nil {
		a.Date = t
	}
	return a, nil
}

// CreateArticle writes a new article file named after base. An existing
// article is never replaced: a taken name gets a numeric suffix. The chosen
// file name is stored in a.Filename.
func (s *Store) CreateArticle(base string, a *types.Article) (string, error) {
	data, err := frontmatter.Write(a, []byte(strings.TrimSpace(a.Body)+"\n"))
	if err != nil {
		return "", fmt.Errorf("store: render article: %w", err)
	}
	name, err := createExclusive(s.PostsDir(), base, ".md", data)
	if err != nil {
		return "", err
	}
	a.Filename = name
	return name, nil
}
