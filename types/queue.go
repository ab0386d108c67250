package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Queue item types
const (
	ItemArticleShare = "article-share"
	ItemStandalone   = "standalone"
)

// Platform names, used as keys in the posted/postedAt/content maps.
const (
	PlatformX         = "x"
	PlatformInstagram = "instagram"
)

// Marker is a per-platform delivery marker: either Delivered, or Pending with
// a cursor counting the units already delivered. On disk it is `true`,
// `false` (cursor 0) or the integer cursor.
type Marker struct {
	delivered bool
	cursor    int
}

// Delivered returns the terminal marker.
func Delivered() Marker { return Marker{delivered: true} }

// PendingAt returns a pending marker whose next unit is cursor.
func PendingAt(cursor int) Marker {
	if cursor < 0 {
		cursor = 0
	}
	return Marker{cursor: cursor}
}

// IsDelivered reports whether every unit has been delivered.
func (m Marker) IsDelivered() bool { return m.delivered }

// Cursor returns the index of the next undelivered unit.
func (m Marker) Cursor() int { return m.cursor }

// Advance returns the marker after one more unit of total has been delivered.
// The result is never lower than m.
func (m Marker) Advance(total int) Marker {
	if m.delivered {
		return m
	}
	next := m.cursor + 1
	if next >= total {
		return Delivered()
	}
	return PendingAt(next)
}

// Saturate turns a cursor that already covers total units into Delivered.
func (m Marker) Saturate(total int) Marker {
	if !m.delivered && m.cursor >= total {
		return Delivered()
	}
	return m
}

// Before reports whether m is strictly behind o.
func (m Marker) Before(o Marker) bool {
	return m.rank() < o.rank()
}

func (m Marker) rank() int {
	if m.delivered {
		return math.MaxInt
	}
	return m.cursor
}

func (m Marker) String() string {
	if m.delivered {
		return "delivered"
	}
	return fmt.Sprintf("pending@%d", m.cursor)
}

// MarshalJSON encodes the marker in its legacy-compatible form.
func (m Marker) MarshalJSON() ([]byte, error) {
	if m.delivered {
		return []byte("true"), nil
	}
	if m.cursor == 0 {
		return []byte("false"), nil
	}
	return []byte(fmt.Sprintf("%d", m.cursor)), nil
}

// UnmarshalJSON resolves boolean and numeric markers into the tagged form.
func (m *Marker) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*m = Delivered()
		return nil
	case "false", "null":
		*m = PendingAt(0)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("delivery marker: unexpected value %s", string(data))
	}
	*m = PendingAt(int(n))
	return nil
}

// Post is one deliverable unit: short-form posts carry Text, long-form
// posts carry Caption.
type Post struct {
	Text     string   `json:"text,omitempty"`
	Caption  string   `json:"caption,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// Body returns the post's base text.
func (p Post) Body() string {
	if p.Text != "" {
		return p.Text
	}
	return p.Caption
}

// Render returns the platform-native text: base text, a blank line, then the
// hashtags as space-joined #tag tokens. A post without base text renders empty.
func (p Post) Render() string {
	body := strings.TrimSpace(p.Body())
	if body == "" {
		return ""
	}
	var tags []string
	for _, h := range p.Hashtags {
		h = strings.TrimLeft(strings.TrimSpace(h), "#")
		if h == "" {
			continue
		}
		tags = append(tags, "#"+h)
	}
	if len(tags) == 0 {
		return body
	}
	return body + "\n\n" + strings.Join(tags, " ")
}

// PlatformContent is what a queue item holds for one platform: either
// structured posts (a single post, or an ordered list delivered one unit at
// a time) or the raw completion text that could not be parsed.
type PlatformContent struct {
	posts      []Post
	list       bool
	raw        string
	structured bool
}

// Structured wraps a single post.
func Structured(p Post) PlatformContent {
	return PlatformContent{posts: []Post{p}, structured: true}
}

// StructuredList wraps an ordered list of posts.
func StructuredList(posts []Post) PlatformContent {
	return PlatformContent{posts: append([]Post(nil), posts...), list: true, structured: true}
}

// Unstructured wraps raw text that did not parse as a post.
func Unstructured(raw string) PlatformContent {
	return PlatformContent{raw: raw}
}

// ParsePlatformContent interprets a completion response: fences are stripped
// and the remainder parsed as a post object or list; anything else is kept raw.
func ParsePlatformContent(text string) PlatformContent {
	inner := StripCodeFence(text)
	if c, ok := parseStructured([]byte(inner)); ok {
		return c
	}
	return Unstructured(inner)
}

// IsStructured reports whether the content parsed into posts.
func (c PlatformContent) IsStructured() bool { return c.structured }

// IsList reports whether the content is an ordered multi-unit list.
func (c PlatformContent) IsList() bool { return c.list }

// Raw returns the unparsed text of unstructured content.
func (c PlatformContent) Raw() string { return c.raw }

// Posts returns the structured posts.
func (c PlatformContent) Posts() []Post { return c.posts }

// Units returns the number of deliverable units.
func (c PlatformContent) Units() int {
	if c.structured {
		return len(c.posts)
	}
	return 1
}

// RenderUnit returns the text of unit i, or "" when it has nothing to send.
func (c PlatformContent) RenderUnit(i int) string {
	if !c.structured || i < 0 || i >= len(c.posts) {
		return ""
	}
	return c.posts[i].Render()
}

// MarshalJSON writes a post object, a post list, or the raw string.
func (c PlatformContent) MarshalJSON() ([]byte, error) {
	if !c.structured {
		return json.Marshal(c.raw)
	}
	if c.list {
		return json.Marshal(c.posts)
	}
	if len(c.posts) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(c.posts[0])
}

// UnmarshalJSON resolves the content shape once at load time. String values
// are re-parsed because older items stored the fence-stripped JSON text.
func (c *PlatformContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ParsePlatformContent(s)
		return nil
	}
	if string(data) == "null" {
		*c = PlatformContent{}
		return nil
	}
	parsed, ok := parseStructured(data)
	if !ok {
		return fmt.Errorf("platform content: unexpected shape %.40s", string(data))
	}
	*c = parsed
	return nil
}

func parseStructured(data []byte) (PlatformContent, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return PlatformContent{}, false
	}
	switch data[0] {
	case '{':
		var p Post
		if err := json.Unmarshal(data, &p); err != nil {
			return PlatformContent{}, false
		}
		return Structured(p), true
	case '[':
		var posts []Post
		if err := json.Unmarshal(data, &posts); err != nil {
			return PlatformContent{}, false
		}
		return StructuredList(posts), true
	}
	return PlatformContent{}, false
}

// QueueContent is the generated content of a queue item.
type QueueContent struct {
	X         *PlatformContent `json:"x,omitempty"`
	Instagram *PlatformContent `json:"instagram,omitempty"`
	Title     string           `json:"title,omitempty"`
	Topic     string           `json:"topic,omitempty"`
}

// For returns the content for platform and whether any was generated.
func (c QueueContent) For(platform string) (PlatformContent, bool) {
	var pc *PlatformContent
	switch platform {
	case PlatformX:
		pc = c.X
	case PlatformInstagram:
		pc = c.Instagram
	}
	if pc == nil {
		return PlatformContent{}, false
	}
	return *pc, true
}

// Platforms lists the platforms that have content, in fixed order.
func (c QueueContent) Platforms() []string {
	var out []string
	if c.X != nil {
		out = append(out, PlatformX)
	}
	if c.Instagram != nil {
		out = append(out, PlatformInstagram)
	}
	return out
}

// QueueItem is one batch of generated social content awaiting delivery.
// Items are never deleted; they double as the delivery audit log.
type QueueItem struct {
	Type      string               `json:"type"`
	CreatedAt time.Time            `json:"createdAt"`
	Posted    map[string]Marker    `json:"posted"`
	PostedAt  map[string]time.Time `json:"postedAt,omitempty"`
	Content   QueueContent         `json:"content"`
}

// NewQueueItem builds an item with every target platform marked not delivered.
func NewQueueItem(kind string, createdAt time.Time, content QueueContent, platforms ...string) *QueueItem {
	posted := make(map[string]Marker, len(platforms))
	for _, p := range platforms {
		posted[p] = PendingAt(0)
	}
	return &QueueItem{
		Type:      kind,
		CreatedAt: createdAt,
		Posted:    posted,
		Content:   content,
	}
}

// Marker returns the delivery marker for platform (pending at 0 when unset).
func (q *QueueItem) Marker(platform string) Marker {
	if q.Posted == nil {
		return PendingAt(0)
	}
	return q.Posted[platform]
}

// Targets reports whether the item was generated for platform: it either
// carries content for it or was created with a marker for it.
func (q *QueueItem) Targets(platform string) bool {
	if _, ok := q.Posted[platform]; ok {
		return true
	}
	_, ok := q.Content.For(platform)
	return ok
}

// SetMarker stores m for platform unless it would move the marker backwards.
// It reports whether the stored marker changed.
func (q *QueueItem) SetMarker(platform string, m Marker) bool {
	if q.Posted == nil {
		q.Posted = make(map[string]Marker)
	}
	current, ok := q.Posted[platform]
	if ok && (m.Before(current) || m == current) {
		return false
	}
	q.Posted[platform] = m
	return true
}

// StampDelivery records when platform last received a unit of this item.
func (q *QueueItem) StampDelivery(platform string, at time.Time) {
	if q.PostedAt == nil {
		q.PostedAt = make(map[string]time.Time)
	}
	q.PostedAt[platform] = at
}
