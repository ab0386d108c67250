package reflection

import (
	"encoding/json"
	"fmt"
	"strings"

	"autoblog/config"
)

const responseShape = "```json\n" + `{
  "reflection": {
    "good_points": ["良かった点1", "良かった点2"],
    "bad_points": ["改善すべき点1", "改善すべき点2"],
    "content_quality_score": 7,
    "keyword_strategy_score": 6,
    "overall_assessment": "全体評価を2〜3文で"
  },
  "trend_analysis": {
    "hot_topics": ["トレンドトピック1", "トレンドトピック2", "トレンドトピック3"],
    "recommended_angles": ["切り口1", "切り口2"],
    "avoid_topics": ["避けるべきトピック（飽和している等）"]
  },
  "strategy": {
    "priority_keyword": "明日最優先で書くべきキーワード",
    "writing_style_adjustment": "文体・構成で変えること",
    "seo_improvements": ["SEO改善ポイント1", "SEO改善ポイント2"],
    "sns_strategy": "SNS投稿で変えること",
    "new_keywords_to_add": ["追加すべき新キーワード1", "追加すべき新キーワード2"],
    "content_direction": "今後のコンテンツの方向性（2〜3文）",
    "experiment": "明日試す新しい取り組み（1つ）"
  },
  "summary": "今回の反省・戦略の要約（1文）"
}` + "\n```"

// BuildPrompt renders the snapshot into the reflection request.
func BuildPrompt(snap *Snapshot) string {
	var b strings.Builder
	b.WriteString(`あなたはブログ・SNSコンテンツ戦略の専門コンサルタントです。
以下のデータを分析し、自己反省と翌日の戦略を策定してください。

## 現在のブログ: 「AI Efficiency Lab」（AI活用術・効率化ツール情報メディア）

## 運用データ:
`)
	fmt.Fprintf(&b, "- 運用日数: %d日\n", snap.DaysSinceStart)
	fmt.Fprintf(&b, "- 公開記事数: %d本\n", snap.TotalArticles)
	fmt.Fprintf(&b, "- SNS投稿数: %d件\n", snap.TotalQueueItems)
	fmt.Fprintf(&b, "- 使用済みキーワード: %d個\n", len(snap.UsedKeywords))
	fmt.Fprintf(&b, "- 残りキーワード: %d個\n", len(snap.RemainingKeywords))

	b.WriteString("\n## 最近の記事（直近10本）:\n")
	for i, a := range snap.RecentArticles {
		date := ""
		if !a.Date.IsZero() {
			date = a.Date.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%d. 「%s」(キーワード: %s, %d文字, %s)\n", i+1, a.Title, a.Keyword, a.Length, date)
	}

	if len(snap.RecentQueueItems) > 0 {
		b.WriteString("\n## 最近のSNS投稿キュー:\n")
		for _, q := range snap.RecentQueueItems {
			fmt.Fprintf(&b, "- %s (%s) 配信状況: %v\n", q.Name, q.Type, q.Delivered)
		}
	}

	b.WriteString("\n## 前回の戦略:\n")
	if snap.PreviousStrategy != nil {
		prev, _ := json.MarshalIndent(snap.PreviousStrategy.Strategy, "", "  ")
		b.Write(prev)
		b.WriteString("\n")
	} else {
		b.WriteString("なし（初回）\n")
	}

	b.WriteString("\n## 過去の反省の要点:\n")
	if len(snap.PreviousReflections) == 0 {
		b.WriteString("なし（初回）\n")
	}
	for _, r := range snap.PreviousReflections {
		summary := r.Summary
		if summary == "" {
			summary = "反省なし"
		}
		fmt.Fprintf(&b, "- %s: %s\n", r.Date, summary)
	}

	remaining := snap.RemainingKeywords
	if len(remaining) > config.RemainingKeywordsShown {
		remaining = remaining[:config.RemainingKeywordsShown]
	}
	b.WriteString("\n## 残りキーワード候補:\n")
	b.WriteString(strings.Join(remaining, ", "))
	b.WriteString("\n")

	if len(snap.Headlines) > 0 {
		b.WriteString("\n## 最新のニュース見出し:\n")
		for _, h := range snap.Headlines {
			fmt.Fprintf(&b, "- %s (%s)\n", h.Title, h.Source)
			if h.Excerpt != "" {
				fmt.Fprintf(&b, "  %s\n", h.Excerpt)
			}
		}
	}

	fmt.Fprintf(&b, `
## タスク:
以下の3つをJSON形式で出力してください。

1. **reflection（反省）**: 過去のコンテンツを分析し、何が良かったか・何を改善すべきかを具体的に指摘
2. **trend_analysis（トレンド分析）**: %d年%d月時点のAI・テック業界のトレンドを考慮し、今伸びそうなトピックを提案
3. **strategy（翌日の戦略）**: 反省とトレンドを踏まえた具体的な行動計画

以下のJSON形式で出力してください:
`, snap.At.Year(), int(snap.At.Month()))
	b.WriteString(responseShape)
	return b.String()
}
