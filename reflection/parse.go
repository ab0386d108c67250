package reflection

import (
	"encoding/json"
	"strings"

	"autoblog/config"
	"autoblog/types"
)

// DegradedSummary is the summary of a reflection whose response did not parse.
const DegradedSummary = "reflection response could not be parsed; detailed review deferred to the next run"

type response struct {
	Reflection    types.Assessment     `json:"reflection"`
	TrendAnalysis types.TrendAnalysis  `json:"trend_analysis"`
	Strategy      types.Recommendation `json:"strategy"`
	Summary       string               `json:"summary"`
}

// ParseReflection decodes a reflection response. It never fails: text that is
// not the expected JSON object yields a degraded record that keeps the raw
// text and the default content direction.
func ParseReflection(text string) *types.ReflectionRecord {
	inner := types.StripCodeFence(text)

	var resp response
	if strings.HasPrefix(inner, "{") && json.Unmarshal([]byte(inner), &resp) == nil {
		resp.Reflection.ClampScores()
		if resp.TrendAnalysis.HotTopics == nil {
			resp.TrendAnalysis.HotTopics = []string{}
		}
		return &types.ReflectionRecord{
			Reflection:    resp.Reflection,
			TrendAnalysis: resp.TrendAnalysis,
			Strategy:      resp.Strategy,
			Summary:       resp.Summary,
		}
	}

	raw := inner
	if raw == "" {
		raw = "(empty response)"
	}
	return &types.ReflectionRecord{
		Reflection: types.Assessment{
			OverallAssessment: types.Truncate(raw, config.DegradedAssessmentLength),
		},
		TrendAnalysis: types.TrendAnalysis{HotTopics: []string{}},
		Strategy:      types.Recommendation{ContentDirection: config.DefaultContentDirection},
		Summary:       DegradedSummary,
		Raw:           raw,
	}
}
