package dialogue

import "fmt"

// questionTable maps canonical field identifiers to the localized prompt
// asked when the field is missing.
var questionTable = map[string]string{
	FieldSellerName:    "請求元（売り手）の会社名または氏名を教えてください。",
	FieldBuyerName:     "請求先（買い手）の会社名または氏名を教えてください。",
	FieldItemSKU:       "商品のSKU（型番・品番）を教えてください。",
	FieldItemName:      "商品名（例：スマートフォン機種名）を教えてください。",
	FieldItemQty:       "数量はいくつですか？（半角の正の整数）",
	FieldItemUnitPrice: "単価はいくらですか？（税抜/税込のどちらでも。半角数字、例：49800）",
	FieldCurrency:      "通貨を選んでください（JPY / USD / EUR）。",
	FieldPaymentMethod: "お支払い方法は？（銀行振込 / クレジットカード / 現金）",
}

// NextQuestion returns the prompt for one field. Identifiers outside the
// table fall back to a generic prompt naming the field.
func NextQuestion(field string) string {
	if q, ok := questionTable[field]; ok {
		return q
	}
	return fmt.Sprintf("%s を教えてください。", field)
}
