package config

import "time"

// Directory Constants (relative to the store root)
const (
	// DataDir holds every JSON state document
	DataDir = "data"

	// QueueDir holds one JSON file per queued social batch
	QueueDir = "data/sns-queue"

	// ReflectionsDir holds one reflection record per calendar day
	ReflectionsDir = "data/reflections"

	// PostsDir holds the generated Markdown articles
	PostsDir = "src/posts"

	// LogDir holds the dated run logs
	LogDir = "logs"
)

// State File Constants
const (
	KeywordsFile = "data/keywords.json"
	StatsFile    = "data/stats.json"
	StrategyFile = "data/strategy.json"
	LockFile     = "data/.autoblog.lock"
)

// Article Constants
const (
	// ArticleLayout is the site template every generated article renders with
	ArticleLayout = "post.njk"

	// MaxSlugLength bounds the keyword part of an article filename, in characters
	MaxSlugLength = 50

	// DefaultTitlePrefix is used when the generated front matter has no title
	DefaultTitlePrefix = "AI活用術 - "

	// PreviewLength is how much of the body `article --test` prints
	PreviewLength = 500
)

// Social Post Constants
const (
	// ArticleExcerptLength is how much of the article a social prompt sees
	ArticleExcerptLength = 2000

	// DefaultPlaceholderImage is posted with Instagram captions when no image is configured
	DefaultPlaceholderImage = "https://via.placeholder.com/1080x1080/6c5ce7/ffffff?text=AI+Efficiency+Lab"

	// GraphAPIVersion is the Instagram Graph API version used for publishing
	GraphAPIVersion = "v18.0"
)

// EvergreenTopics feed standalone social posts, independent of the keyword pool.
var EvergreenTopics = []string{
	"AIツールの小技・Tips",
	"効率化のライフハック",
	"おすすめの無料AIツール紹介",
	"生産性向上の考え方",
	"AIニュースの解説",
	"便利なショートカットキー",
	"リモートワークのコツ",
	"AIで自動化できること",
}

// Reflection Constants
const (
	// ProposedKeywordsCategory receives keywords proposed by the reflection step
	ProposedKeywordsCategory = "AI提案キーワード"

	// RecentArticlesWindow is how many articles the reflection step reviews
	RecentArticlesWindow = 10

	// RecentQueueWindow is how many queue items the reflection step reviews
	RecentQueueWindow = 10

	// RecentReflectionsWindow is how many past summaries the reflection step reads
	RecentReflectionsWindow = 5

	// ArticlePreviewLength bounds each article preview in the reflection snapshot
	ArticlePreviewLength = 300

	// RemainingKeywordsShown bounds the keyword candidates listed in the prompt
	RemainingKeywordsShown = 20

	// DegradedAssessmentLength bounds raw text kept when a reflection fails to parse
	DegradedAssessmentLength = 500

	// DefaultContentDirection is the strategy kept when a reflection fails to parse
	DefaultContentDirection = "maintain current direction"
)

// Pipeline Constants
const (
	// StepTimeout bounds every pipeline step
	StepTimeout = 2 * time.Minute

	// MaxDispatchDelay is the upper bound of the randomized pre-dispatch sleep
	MaxDispatchDelay = 2 * time.Hour

	// StatusLogLines is how many log lines the run status keeps
	StatusLogLines = 50

	// CommitMessagePrefix starts every automated site commit
	CommitMessagePrefix = "auto: daily content update"
)

// Schedule Constants (cron expressions, local time)
const (
	DailyPipelineSchedule = "0 6 * * *"
)

// DispatchSchedules are the daily X dispatch slots.
var DispatchSchedules = []string{"0 8 * * *", "0 12 * * *", "0 18 * * *"}
