package types

import "time"

// Recommendation is the forward plan produced by a reflection run.
type Recommendation struct {
	PriorityKeyword        string   `json:"priority_keyword,omitempty"`
	WritingStyleAdjustment string   `json:"writing_style_adjustment,omitempty"`
	SEOImprovements        []string `json:"seo_improvements,omitempty"`
	SNSStrategy            string   `json:"sns_strategy,omitempty"`
	NewKeywordsToAdd       []string `json:"new_keywords_to_add,omitempty"`
	ContentDirection       string   `json:"content_direction,omitempty"`
	Experiment             string   `json:"experiment,omitempty"`
}

// TrendAnalysis lists topics worth writing about and topics to avoid.
type TrendAnalysis struct {
	HotTopics         []string `json:"hot_topics"`
	RecommendedAngles []string `json:"recommended_angles,omitempty"`
	AvoidTopics       []string `json:"avoid_topics,omitempty"`
}

// Strategy is the single current plan consumed by the next generation run.
// It is overwritten wholesale by every reflection.
type Strategy struct {
	LastUpdated       time.Time      `json:"lastUpdated"`
	Strategy          Recommendation `json:"strategy"`
	TrendAnalysis     TrendAnalysis  `json:"trendAnalysis"`
	ReflectionSummary string         `json:"reflectionSummary"`
}

// PriorityKeyword returns the recommended keyword, or "" for a nil strategy.
func (s *Strategy) PriorityKeyword() string {
	if s == nil {
		return ""
	}
	return s.Strategy.PriorityKeyword
}
