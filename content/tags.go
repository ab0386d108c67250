package content

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// tagList accepts `tags: [a, b]`, a block list, or a single comma-separated
// string; models produce all three.
type tagList []string

func (t *tagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = clean(list)
	case yaml.ScalarNode:
		*t = clean(strings.Split(node.Value, ","))
	default:
		*t = nil
	}
	return nil
}

func clean(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
