package types

import "time"

// Assessment is the retrospective half of a reflection.
type Assessment struct {
	GoodPoints           []string `json:"good_points,omitempty"`
	BadPoints            []string `json:"bad_points,omitempty"`
	ContentQualityScore  *float64 `json:"content_quality_score,omitempty"`
	KeywordStrategyScore *float64 `json:"keyword_strategy_score,omitempty"`
	OverallAssessment    string   `json:"overall_assessment,omitempty"`
}

// ClampScores pins both scores, when present, to the 1-10 range.
func (a *Assessment) ClampScores() {
	a.ContentQualityScore = ClampScore(a.ContentQualityScore)
	a.KeywordStrategyScore = ClampScore(a.KeywordStrategyScore)
}

// ClampScore returns a copy of v limited to [1, 10], or nil.
func ClampScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	s := *v
	if s < 1 {
		s = 1
	}
	if s > 10 {
		s = 10
	}
	return &s
}

// ReflectionRecord is one day's self-assessment. A second run on the same
// date replaces that date's record.
type ReflectionRecord struct {
	Date          string         `json:"date"`
	Reflection    Assessment     `json:"reflection"`
	TrendAnalysis TrendAnalysis  `json:"trend_analysis"`
	Strategy      Recommendation `json:"strategy"`
	Summary       string         `json:"summary"`
	Raw           string         `json:"raw,omitempty"`
	GeneratedAt   time.Time      `json:"generatedAt"`
}

// Degraded reports whether the record was built from an unparseable response.
func (r *ReflectionRecord) Degraded() bool {
	return r.Raw != ""
}
