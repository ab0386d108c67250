package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		title   string
		body    string
		wantErr error
	}{
		{"basic", "---\ntitle: \"Hello\"\ntags: [\"a\", \"b\"]\n---\n\nBody text\n", "Hello", "Body text\n", nil},
		{"crlf", "---\r\ntitle: x\r\n---\r\nbody", "x", "body", nil},
		{"closing fence at end", "---\ntitle: only\n---", "only", "", nil},
		{"no opening fence", "title: x\n---\nbody", "", "", ErrMissing},
		{"unclosed", "---\ntitle: x\nbody", "", "", ErrMalformed},
		{"bad yaml", "---\ntitle: [unclosed\n---\nbody", "", "", ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m meta
			body, err := Parse([]byte(tc.in), &m)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.title, m.Title)
			assert.Equal(t, tc.body, string(body))
		})
	}
}

func TestWriteThenParse(t *testing.T) {
	out, err := Write(meta{Title: "タイトル", Tags: []string{"AI"}}, []byte("## 見出し\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "---\ntitle: タイトル\n")

	var m meta
	body, err := Parse(out, &m)
	require.NoError(t, err)
	assert.Equal(t, "タイトル", m.Title)
	assert.Equal(t, []string{"AI"}, m.Tags)
	assert.Equal(t, "## 見出し\n", string(body))
}
