package schema

import "strings"

// Canonical synonym tables for currency and payment method. Both the
// per-field answer normalizer and the promoter's defensive re-normalization
// pass go through these two functions; there is deliberately no second
// table anywhere else.

var currencySynonyms = map[string]Currency{
	"円":   CurrencyJPY,
	"日本円": CurrencyJPY,
	"JPY": CurrencyJPY,
	"ドル":  CurrencyUSD,
	"USD": CurrencyUSD,
	"ユーロ": CurrencyEUR,
	"EUR": CurrencyEUR,
}

var paymentSynonyms = map[string]PaymentMethod{
	"銀行振込":          PaymentBankTransfer,
	"振込":            PaymentBankTransfer,
	"BANK_TRANSFER": PaymentBankTransfer,
	"クレジットカード":      PaymentCard,
	"カード":           PaymentCard,
	"CARD":          PaymentCard,
	"現金":            PaymentCash,
	"CASH":          PaymentCash,
}

// NormalizeCurrency maps localized currency text to its canonical code.
// The text is uppercased and an enum-style prefix ("Currency.JPY") is
// stripped first. Unrecognized text passes through for later rejection.
func NormalizeCurrency(s string) string {
	t := stripEnumPrefix(strings.ToUpper(strings.TrimSpace(s)))
	if c, ok := currencySynonyms[t]; ok {
		return string(c)
	}
	return t
}

// NormalizePayment maps localized payment-method text to its canonical
// code. Unrecognized text passes through for later rejection.
func NormalizePayment(s string) string {
	t := stripEnumPrefix(strings.TrimSpace(s))
	if m, ok := paymentSynonyms[t]; ok {
		return string(m)
	}
	if m, ok := paymentSynonyms[strings.ToUpper(t)]; ok {
		return string(m)
	}
	return t
}

// stripEnumPrefix turns "Currency.JPY" / "PaymentMethod.CARD" style values
// into their bare member name.
func stripEnumPrefix(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
