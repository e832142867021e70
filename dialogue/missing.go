// Package dialogue implements the slot-filling engine: it decides which
// order fields still need asking, normalizes one answer per turn, and
// promotes a complete draft into a strict order.
package dialogue

import (
	"strings"

	"github.com/mizuiro-dev/orderagent/schema"
)

// Canonical field identifiers, dotted/indexed paths addressing one leaf
// value in the draft.
const (
	FieldSellerName    = "seller.name"
	FieldBuyerName     = "buyer.name"
	FieldItemSKU       = "items[0].sku"
	FieldItemName      = "items[0].name"
	FieldItemQty       = "items[0].qty"
	FieldItemUnitPrice = "items[0].unit_price"
	FieldItemDiscount  = "items[0].discount"
	FieldCurrency      = "currency"
	FieldPaymentMethod = "payment_method"
	FieldTaxRatePct    = "tax_rate_pct"
	FieldShippingFee   = "shipping_fee"
	FieldIssueDate     = "issue_date"
	FieldDueDate       = "due_date"
	FieldNotes         = "notes"
)

// CalcMissing returns the dialogue-required fields absent from the draft,
// in ask order. The result is stable: the same draft always yields the
// same list, so the head is a well-defined next field to ask. The check is
// a weaker, dialogue-level requiredness test; fields with defaults
// (issue_date, tax rate, shipping fee) and per-item SKUs are left to the
// promoter's strict validation.
func CalcMissing(d schema.OrderDraft) []string {
	var missing []string
	if !partyNamed(d.Seller) {
		missing = append(missing, FieldSellerName)
	}
	if !partyNamed(d.Buyer) {
		missing = append(missing, FieldBuyerName)
	}
	if len(d.Items) == 0 {
		missing = append(missing, FieldItemName, FieldItemQty, FieldItemUnitPrice)
	} else {
		it := d.Items[0]
		if strings.TrimSpace(it.Name) == "" {
			missing = append(missing, FieldItemName)
		}
		if it.Qty <= 0 {
			missing = append(missing, FieldItemQty)
		}
		if it.UnitPrice == nil || !it.UnitPrice.IsPositive() {
			missing = append(missing, FieldItemUnitPrice)
		}
	}
	if strings.TrimSpace(d.Currency) == "" {
		missing = append(missing, FieldCurrency)
	}
	if strings.TrimSpace(d.PaymentMethod) == "" {
		missing = append(missing, FieldPaymentMethod)
	}
	return missing
}

func partyNamed(p *schema.PartyDraft) bool {
	return p != nil && strings.TrimSpace(p.Name) != ""
}
