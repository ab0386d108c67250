package content

import (
	"fmt"
	"strings"

	"autoblog/types"
)

// BuildPrompt asks for an SEO article about keyword, weaving in the current
// strategy's guidance and trend topics when there are any.
func BuildPrompt(keyword string, strategy *types.Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, `あなたは「AI活用術・効率化ツール」専門のプロブロガーです。
以下のキーワードについて、SEOに最適化された高品質なブログ記事を書いてください。

キーワード: 「%s」

## 必須要件:
1. タイトルは30〜50文字で、キーワードを含める
2. 記事の長さは2000〜3000文字
3. 以下のマークダウン構造で書く:
   - 導入文（読者の悩みに共感）
   - ## 見出し1（基本的な説明）
   - ## 見出し2（具体的な使い方・方法）
   - ## 見出し3（メリット・活用のコツ）
   - ## まとめ
4. 読みやすく、実用的で、具体的な情報を含める
5. 自然な日本語で書く（AI臭さを出さない）
6. 箇条書きや番号リストを適度に使う`, keyword)

	if strategy != nil {
		s := strategy.Strategy
		var parts []string
		if s.WritingStyleAdjustment != "" {
			parts = append(parts, "- 文体の調整: "+s.WritingStyleAdjustment)
		}
		if len(s.SEOImprovements) > 0 {
			parts = append(parts, "- SEO改善: "+strings.Join(s.SEOImprovements, "、"))
		}
		if s.ContentDirection != "" {
			parts = append(parts, "- コンテンツの方向性: "+s.ContentDirection)
		}
		if s.Experiment != "" {
			parts = append(parts, "- 今日の実験: "+s.Experiment)
		}
		if len(parts) > 0 {
			b.WriteString("\n\n## 戦略エンジンからのフィードバック（必ず反映してください）:\n")
			b.WriteString(strings.Join(parts, "\n"))
		}

		if topics := strategy.TrendAnalysis.HotTopics; len(topics) > 0 {
			b.WriteString("\n\n## 現在のトレンド（可能なら記事に言及してください）:\n")
			for i, t := range topics {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- " + t)
			}
		}
	}

	b.WriteString(`

## 出力フォーマット:
以下の形式で正確に出力してください。---の外に何も書かないでください。

---
title: "ここにタイトル"
description: "ここに120文字以内のメタディスクリプション"
tags: ["タグ1", "タグ2"]
---

ここに記事本文（マークダウン形式）`)
	return b.String()
}
