package dialogue

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuiro-dev/orderagent/schema"
)

func TestApplyAnswerFreeText(t *testing.T) {
	next := ApplyAnswer(schema.OrderDraft{}, FieldItemName, "  Widget \n")
	require.Len(t, next.Items, 1)
	assert.Equal(t, "Widget", next.Items[0].Name)
}

func TestApplyAnswerQuantity(t *testing.T) {
	t.Run("valid with unit suffix", func(t *testing.T) {
		next := ApplyAnswer(schema.OrderDraft{}, FieldItemQty, "3個")
		require.Len(t, next.Items, 1)
		assert.Equal(t, 3, next.Items[0].Qty)
	})

	for _, invalid := range []string{"abc", "0", "-3", ""} {
		t.Run("invalid "+invalid, func(t *testing.T) {
			next := ApplyAnswer(schema.OrderDraft{}, FieldItemQty, invalid)
			assert.Contains(t, CalcMissing(next), FieldItemQty)
			if len(next.Items) > 0 {
				assert.Zero(t, next.Items[0].Qty)
			}
		})
	}
}

func TestApplyAnswerMonetaryAmount(t *testing.T) {
	next := ApplyAnswer(schema.OrderDraft{}, FieldItemUnitPrice, "8,000円")
	require.Len(t, next.Items, 1)
	require.NotNil(t, next.Items[0].UnitPrice)
	assert.True(t, next.Items[0].UnitPrice.Equal(decimal.NewFromInt(8000)))

	for _, invalid := range []string{"", "円", "1.2.3"} {
		next := ApplyAnswer(schema.OrderDraft{}, FieldItemUnitPrice, invalid)
		if len(next.Items) > 0 {
			assert.Nil(t, next.Items[0].UnitPrice, "input %q", invalid)
		}
	}
}

func TestApplyAnswerCurrency(t *testing.T) {
	tests := map[string]string{
		"円":            "JPY",
		"Currency.JPY": "JPY",
		"usd":          "USD",
		"ペソ":           "ペソ",
	}
	for input, want := range tests {
		next := ApplyAnswer(schema.OrderDraft{}, FieldCurrency, input)
		assert.Equal(t, want, next.Currency, "input %q", input)
	}
}

func TestApplyAnswerPaymentMethod(t *testing.T) {
	next := ApplyAnswer(schema.OrderDraft{}, FieldPaymentMethod, "振込")
	assert.Equal(t, "BANK_TRANSFER", next.PaymentMethod)

	next = ApplyAnswer(schema.OrderDraft{}, FieldPaymentMethod, "小切手")
	assert.Equal(t, "小切手", next.PaymentMethod)
}

func TestApplyAnswerPartyFields(t *testing.T) {
	d := ApplyAnswer(schema.OrderDraft{}, FieldSellerName, "山田商店")
	d = ApplyAnswer(d, "buyer.email", "abc@example.com")
	require.NotNil(t, d.Seller)
	assert.Equal(t, "山田商店", d.Seller.Name)
	require.NotNil(t, d.Buyer)
	assert.Equal(t, "abc@example.com", d.Buyer.Email)
}

func TestApplyAnswerAliasesBareIdentifiers(t *testing.T) {
	viaAlias := ApplyAnswer(schema.OrderDraft{}, "buyer", "ACME")
	viaPath := ApplyAnswer(schema.OrderDraft{}, FieldBuyerName, "ACME")
	assert.Equal(t, viaPath, viaAlias)

	viaAlias = ApplyAnswer(schema.OrderDraft{}, "seller", "山田商店")
	viaPath = ApplyAnswer(schema.OrderDraft{}, FieldSellerName, "山田商店")
	assert.Equal(t, viaPath, viaAlias)
}

func TestApplyAnswerDoesNotMutateInput(t *testing.T) {
	d := dialogueCompleteDraft(t)
	before, err := schema.EncodeDraft(d)
	require.NoError(t, err)

	_ = ApplyAnswer(d, FieldItemQty, "99")
	_ = ApplyAnswer(d, FieldBuyerName, "Someone Else")

	after, err := schema.EncodeDraft(d)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestApplyAnswerUnknownFieldLeavesDraftUnchanged(t *testing.T) {
	d := dialogueCompleteDraft(t)
	next := ApplyAnswer(d, "items[0].color", "red")
	assert.Equal(t, d, next)
}

// Applying a parsed answer for the next missing field removes exactly that
// field from the following missing-field computation.
func TestApplyAnswerIsMonotonic(t *testing.T) {
	answers := map[string]string{
		FieldSellerName:    "山田商店",
		FieldBuyerName:     "ABC Corp",
		FieldItemName:      "Widget",
		FieldItemQty:       "3",
		FieldItemUnitPrice: "100",
		FieldCurrency:      "JPY",
		FieldPaymentMethod: "カード",
	}

	d := schema.OrderDraft{}
	missing := CalcMissing(d)
	for len(missing) > 0 {
		field := missing[0]
		answer, ok := answers[field]
		require.True(t, ok, "no scripted answer for %s", field)

		d = ApplyAnswer(d, field, answer)
		next := CalcMissing(d)
		assert.Equal(t, missing[1:], next)
		missing = next
	}
}
