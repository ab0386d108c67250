package social

import (
	"fmt"
	"strings"
)

func withGuidance(b *strings.Builder, guidance string) {
	if guidance = strings.TrimSpace(guidance); guidance != "" {
		fmt.Fprintf(b, "\n\n## 今日のSNS戦略（反映してください）:\n%s", guidance)
	}
}

// XPrompt asks for a short X post promoting an article.
func XPrompt(title, excerpt, guidance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `以下のブログ記事を元に、X (Twitter) 用の投稿文を生成してください。

記事タイトル: %s
記事内容: %s

要件:
- 140文字以内（日本語）
- 読者の興味を引くフック
- 記事のリンクを貼る想定（文字数に含めない）
- ハッシュタグを2〜3個つける
- 絵文字を効果的に使う
- 宣伝臭くなく、価値ある情報を端的に伝える`, title, excerpt)
	withGuidance(&b, guidance)
	b.WriteString(`

以下のJSON形式で出力:
{"text": "投稿文", "hashtags": ["tag1", "tag2"]}`)
	return b.String()
}

// InstagramPrompt asks for a long-form Instagram caption for an article.
func InstagramPrompt(title, excerpt, guidance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `以下のブログ記事を元に、Instagram投稿用のキャプションを生成してください。

記事タイトル: %s
記事内容: %s

要件:
- 500文字程度
- 最初の1行で強いフック
- 記事の要点を3〜5個のポイントにまとめる
- 「詳しくはプロフィールのリンクから」的な誘導
- ハッシュタグを10〜15個（日本語＋英語混在）
- 絵文字で読みやすくする
- 改行を多めに使って読みやすく`, title, excerpt)
	withGuidance(&b, guidance)
	b.WriteString(`

以下のJSON形式で出力:
{"caption": "キャプション全文", "hashtags": ["tag1", "tag2"]}`)
	return b.String()
}

// StandalonePrompt asks for an X post on an evergreen topic.
func StandalonePrompt(topic, guidance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `あなたはAI活用・効率化の専門家としてXで発信しています。
「%s」について、フォロワーに役立つ投稿を1つ作ってください。

要件:
- 140文字以内（日本語）
- 具体的で実用的な内容
- 読者が「保存したい」「シェアしたい」と思う有益さ
- ハッシュタグ2〜3個
- 絵文字を効果的に使う`, topic)
	withGuidance(&b, guidance)
	b.WriteString(`

以下のJSON形式で出力:
{"text": "投稿文", "hashtags": ["tag1", "tag2"]}`)
	return b.String()
}
