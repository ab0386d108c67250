package types

// KeywordCategory is a named, ordered list of topic keywords.
type KeywordCategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// KeywordPool is the categorized keyword universe plus the used-set.
// UsedKeywords keeps insertion order, which is the order of consumption.
type KeywordPool struct {
	Categories   []KeywordCategory `json:"categories"`
	UsedKeywords []string          `json:"usedKeywords"`
}

// Universe returns every keyword across all categories in category order.
func (p *KeywordPool) Universe() []string {
	var all []string
	for _, c := range p.Categories {
		all = append(all, c.Keywords...)
	}
	return all
}

// Unused returns the keywords of the universe that are not in the used-set.
func (p *KeywordPool) Unused() []string {
	used := make(map[string]struct{}, len(p.UsedKeywords))
	for _, k := range p.UsedKeywords {
		used[k] = struct{}{}
	}
	var out []string
	for _, k := range p.Universe() {
		if _, ok := used[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// IsUsed reports whether k is in the used-set.
func (p *KeywordPool) IsUsed(k string) bool {
	for _, u := range p.UsedKeywords {
		if u == k {
			return true
		}
	}
	return false
}

// MarkUsed appends k to the used-set unless it is already there.
func (p *KeywordPool) MarkUsed(k string) {
	if p.IsUsed(k) {
		return
	}
	p.UsedKeywords = append(p.UsedKeywords, k)
}

// ResetUsed empties the used-set, starting a new recycle epoch.
func (p *KeywordPool) ResetUsed() {
	p.UsedKeywords = []string{}
}

// Contains reports whether k is filed under any category (exact match).
func (p *KeywordPool) Contains(k string) bool {
	for _, c := range p.Categories {
		for _, existing := range c.Keywords {
			if existing == k {
				return true
			}
		}
	}
	return false
}

// EnsureCategory returns the index of the named category, creating it if needed.
func (p *KeywordPool) EnsureCategory(name string) int {
	for i, c := range p.Categories {
		if c.Name == name {
			return i
		}
	}
	p.Categories = append(p.Categories, KeywordCategory{Name: name, Keywords: []string{}})
	return len(p.Categories) - 1
}

// AddToCategory files keywords under the named category, skipping blanks and
// anything already present anywhere in the pool. It returns what was added.
func (p *KeywordPool) AddToCategory(name string, keywords []string) []string {
	idx := p.EnsureCategory(name)
	var added []string
	for _, k := range keywords {
		if k == "" || p.Contains(k) {
			continue
		}
		p.Categories[idx].Keywords = append(p.Categories[idx].Keywords, k)
		added = append(added, k)
	}
	return added
}
