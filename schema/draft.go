package schema

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// PartyDraft is an under-construction seller or buyer. Every field is
// optional; an empty string means the field has not been provided yet.
type PartyDraft struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// ItemDraft is an under-construction order line. Qty <= 0 means unset.
type ItemDraft struct {
	SKU       string           `json:"sku,omitempty"`
	Name      string           `json:"name,omitempty"`
	Qty       int              `json:"qty,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
}

// OrderDraft is the validation-light representation of an order under
// construction. It is always constructible no matter how many fields are
// absent, and it never fails validation; strictness is applied only at
// promotion (BuildOrder). Dates stay raw strings until then.
//
// Drafts are treated as immutable values: each dialogue turn produces a new
// draft via Clone, and the serialized draft (unset fields omitted) is the
// only state a caller carries between turns.
type OrderDraft struct {
	TemplateID    string           `json:"template_id,omitempty"`
	OrderID       string           `json:"order_id,omitempty"`
	IssueDate     string           `json:"issue_date,omitempty"`
	DueDate       string           `json:"due_date,omitempty"`
	Seller        *PartyDraft      `json:"seller,omitempty"`
	Buyer         *PartyDraft      `json:"buyer,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Items         []ItemDraft      `json:"items,omitempty"`
	TaxRatePct    *decimal.Decimal `json:"tax_rate_pct,omitempty"`
	ShippingFee   *decimal.Decimal `json:"shipping_fee,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// DecodeDraft parses a JSON object into a draft. The input is untrusted
// model output, so anything that does not fit the draft shape is an error
// for the caller to surface; absent keys simply stay unset.
func DecodeDraft(data []byte) (OrderDraft, error) {
	var d OrderDraft
	if err := sonic.Unmarshal(data, &d); err != nil {
		return OrderDraft{}, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

// EncodeDraft serializes a draft as a plain JSON object with unset fields
// omitted.
func EncodeDraft(d OrderDraft) ([]byte, error) {
	data, err := sonic.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return data, nil
}

// Clone returns a deep copy of the draft. Mutating the copy never affects
// the original.
func (d OrderDraft) Clone() OrderDraft {
	out := d
	if d.Seller != nil {
		seller := *d.Seller
		out.Seller = &seller
	}
	if d.Buyer != nil {
		buyer := *d.Buyer
		out.Buyer = &buyer
	}
	if d.Items != nil {
		out.Items = make([]ItemDraft, len(d.Items))
		for i, item := range d.Items {
			out.Items[i] = item.clone()
		}
	}
	out.TaxRatePct = cloneDecimal(d.TaxRatePct)
	out.ShippingFee = cloneDecimal(d.ShippingFee)
	return out
}

func (it ItemDraft) clone() ItemDraft {
	out := it
	out.UnitPrice = cloneDecimal(it.UnitPrice)
	out.Discount = cloneDecimal(it.Discount)
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
