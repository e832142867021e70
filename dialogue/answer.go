package dialogue

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mizuiro-dev/orderagent/schema"
)

// fieldAliases canonicalizes bare top-level identifiers before dispatch.
var fieldAliases = map[string]string{
	"seller": FieldSellerName,
	"buyer":  FieldBuyerName,
}

// CanonicalField resolves aliases to canonical field identifiers.
func CanonicalField(field string) string {
	if canonical, ok := fieldAliases[field]; ok {
		return canonical
	}
	return field
}

// ApplyAnswer parses one raw text answer and returns a new draft with
// exactly the targeted field changed; the input draft is never mutated.
// A parse failure leaves the field unset so it reappears in the next
// CalcMissing result, which is the dialogue's retry mechanism.
func ApplyAnswer(d schema.OrderDraft, field, raw string) schema.OrderDraft {
	next := d.Clone()
	text := strings.TrimSpace(raw)

	switch field := CanonicalField(field); field {
	case FieldItemSKU:
		ensureItem(&next).SKU = text
	case FieldItemName:
		ensureItem(&next).Name = text
	case FieldItemQty:
		if qty, ok := parseQty(text); ok {
			ensureItem(&next).Qty = qty
		}
	case FieldItemUnitPrice:
		if amount, ok := parseAmount(text); ok {
			ensureItem(&next).UnitPrice = &amount
		}
	case FieldItemDiscount:
		if amount, ok := parseAmount(text); ok {
			ensureItem(&next).Discount = &amount
		}
	case FieldCurrency:
		next.Currency = schema.NormalizeCurrency(text)
	case FieldPaymentMethod:
		next.PaymentMethod = schema.NormalizePayment(text)
	case FieldTaxRatePct:
		if amount, ok := parseAmount(text); ok {
			next.TaxRatePct = &amount
		}
	case FieldShippingFee:
		if amount, ok := parseAmount(text); ok {
			next.ShippingFee = &amount
		}
	case FieldIssueDate:
		next.IssueDate = text
	case FieldDueDate:
		next.DueDate = text
	case FieldNotes:
		next.Notes = text
	default:
		if role, leaf, ok := splitPartyField(field); ok {
			applyPartyAnswer(&next, role, leaf, text)
		}
	}
	return next
}

func splitPartyField(field string) (role, leaf string, ok bool) {
	role, leaf, found := strings.Cut(field, ".")
	if !found || (role != "seller" && role != "buyer") {
		return "", "", false
	}
	return role, leaf, true
}

func applyPartyAnswer(d *schema.OrderDraft, role, leaf, text string) {
	party := ensureParty(d, role)
	if party == nil {
		return
	}
	switch leaf {
	case "name":
		party.Name = text
	case "email":
		party.Email = text
	case "phone":
		party.Phone = text
	case "address":
		party.Address = text
	case "tax_id":
		party.TaxID = text
	}
}

func ensureParty(d *schema.OrderDraft, role string) *schema.PartyDraft {
	switch role {
	case "seller":
		if d.Seller == nil {
			d.Seller = &schema.PartyDraft{}
		}
		return d.Seller
	case "buyer":
		if d.Buyer == nil {
			d.Buyer = &schema.PartyDraft{}
		}
		return d.Buyer
	}
	return nil
}

func ensureItem(d *schema.OrderDraft) *schema.ItemDraft {
	if len(d.Items) == 0 {
		d.Items = []schema.ItemDraft{{}}
	}
	return &d.Items[0]
}

// parseQty strips every non-digit rune ("3個", "10台" style answers) and
// accepts only positive integers. A minus sign anywhere marks a negative
// answer and fails the parse.
func parseQty(text string) (int, bool) {
	if strings.ContainsAny(text, "-−") {
		return 0, false
	}
	var sb strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	qty, err := strconv.Atoi(sb.String())
	if err != nil || qty <= 0 {
		return 0, false
	}
	return qty, true
}

// parseAmount strips everything except digits and decimal points, then
// parses the remainder as an exact decimal ("8,000円" -> 8000). More than
// one decimal point fails the parse and leaves the field unset.
func parseAmount(text string) (decimal.Decimal, bool) {
	var sb strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	cleaned := sb.String()
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}
