// Package frontmatter reads and writes Markdown documents that open with a
// `---` fenced YAML block.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissing indicates the document did not start with a YAML fence.
	ErrMissing = errors.New("frontmatter: missing front matter")
	// ErrMalformed indicates the fence was not closed or the YAML did not parse.
	ErrMalformed = errors.New("frontmatter: malformed front matter")
)

const fence = "---\n"

// Split separates the YAML block from the body without decoding it.
func Split(content []byte) (meta, body []byte, err error) {
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte(fence)) {
		return nil, nil, ErrMissing
	}
	rest := normalized[len(fence):]
	if bytes.HasPrefix(rest, []byte(fence)) {
		return nil, rest[len(fence):], nil
	}
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) == 2 {
		return parts[0], parts[1], nil
	}
	if trimmed := bytes.TrimRight(rest, "\n"); bytes.HasSuffix(trimmed, []byte("\n---")) {
		return trimmed[:len(trimmed)-len("\n---")], nil, nil
	}
	return nil, nil, ErrMalformed
}

// Parse decodes the YAML block into v and returns the body with leading
// blank lines removed.
func Parse(content []byte, v any) ([]byte, error) {
	meta, body, err := Split(content)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(meta, v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return bytes.TrimLeft(body, "\n"), nil
}

// Write renders v as a YAML block followed by a blank line and body.
func Write(v any, body []byte) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: encode: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
