package extract

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/eino-contrib/jsonschema"

	"github.com/mizuiro-dev/orderagent/schema"
)

const systemPromptTemplate = `あなたはユーザーの日本語の注文依頼を、厳密な JSON の Order オブジェクトに変換するアシスタントです。
JSONのキー名は必ず英語（スキーマと一致）とし、値は日本語で構いません。
日付: YYYY-MM-DD。currency: [JPY, USD, EUR]。payment_method: [CARD, BANK_TRANSFER, CASH]。
価格は数値、小数2桁。items[].qty は正の整数。
入力に書かれていない項目は推測せず、キーごと省略してください。

スキーマ:
%s
`

// jsonOnlyHint forces bare-JSON output. The fallback reattempt drops it.
const jsonOnlyHint = "出力は JSON のみ。説明文やコードブロックは出力しないでください。\n"

const userPromptTemplate = `ユーザー依頼:
%s

上記スキーマに従い、JSONのみ出力してください。
`

// buildSystemPrompts reflects the draft shape into a JSON schema and
// renders the extraction system prompt, with and without the JSON-only
// hint.
func buildSystemPrompts() (withHint, withoutHint string, err error) {
	reflected := jsonschema.Reflect(&schema.OrderDraft{})
	reflected.Title = "Order"
	reflected.Description = "注文依頼から抽出した注文ドラフト。未確定の項目は省略する。"
	schemaJSON, err := sonic.Marshal(reflected)
	if err != nil {
		return "", "", fmt.Errorf("marshal draft schema: %w", err)
	}
	base := fmt.Sprintf(systemPromptTemplate, schemaJSON)
	return jsonOnlyHint + base, base, nil
}

func buildUserPrompt(text string) string {
	return fmt.Sprintf(userPromptTemplate, text)
}
