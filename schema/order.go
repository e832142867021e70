package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCash         PaymentMethod = "CASH"
)

// DefaultTemplateID is used when a draft does not name a render template.
const DefaultTemplateID = "invoice_default_v1"

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FieldError reports the first strict-validation rule a draft violates,
// addressed by the same dotted field identifiers the dialogue uses.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// Party is a validated order participant.
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// OrderItem is a validated order line.
type OrderItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// Order is the strict, terminal order entity. It is created once by
// BuildOrder and must be treated as read-only afterwards; derived amounts
// are computed on demand, never stored.
type Order struct {
	TemplateID    string          `json:"template_id"`
	OrderID       string          `json:"order_id,omitempty"`
	IssueDate     Date            `json:"issue_date"`
	DueDate       *Date           `json:"due_date,omitempty"`
	Seller        Party           `json:"seller"`
	Buyer         Party           `json:"buyer"`
	Currency      Currency        `json:"currency"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []OrderItem     `json:"items"`
	TaxRatePct    decimal.Decimal `json:"tax_rate_pct"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Notes         string          `json:"notes,omitempty"`
}

// ItemsTotal is the sum of qty*unit_price - discount over all lines.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))).Sub(it.Discount)
		total = total.Add(line)
	}
	return total
}

func (o *Order) TaxAmount() decimal.Decimal {
	return o.ItemsTotal().Mul(o.TaxRatePct).Div(decimal.NewFromInt(100))
}

func (o *Order) GrandTotal() decimal.Decimal {
	return o.ItemsTotal().Add(o.TaxAmount()).Add(o.ShippingFee)
}

var (
	defaultTaxRatePct = decimal.NewFromInt(10)
	hundred           = decimal.NewFromInt(100)
)

// BuildOrder promotes a draft into a strict Order. today supplies the
// issue-date default. Any violated rule yields a *FieldError naming the
// offending field; the draft itself is never modified.
func BuildOrder(d OrderDraft, today Date) (*Order, error) {
	o := &Order{
		TemplateID: strings.TrimSpace(d.TemplateID),
		OrderID:    strings.TrimSpace(d.OrderID),
		Notes:      d.Notes,
	}
	if o.TemplateID == "" {
		o.TemplateID = DefaultTemplateID
	}

	seller, err := buildParty("seller", d.Seller)
	if err != nil {
		return nil, err
	}
	o.Seller = seller
	buyer, err := buildParty("buyer", d.Buyer)
	if err != nil {
		return nil, err
	}
	o.Buyer = buyer

	// Currency and payment method may have entered the draft straight from
	// extraction, so the synonym tables are applied again here.
	currency := NormalizeCurrency(d.Currency)
	switch Currency(currency) {
	case CurrencyJPY, CurrencyUSD, CurrencyEUR:
		o.Currency = Currency(currency)
	case "":
		o.Currency = CurrencyJPY
	default:
		return nil, &FieldError{Field: "currency", Reason: fmt.Sprintf("unsupported currency %q", currency)}
	}

	payment := NormalizePayment(d.PaymentMethod)
	switch PaymentMethod(payment) {
	case PaymentCard, PaymentBankTransfer, PaymentCash:
		o.PaymentMethod = PaymentMethod(payment)
	case "":
		o.PaymentMethod = PaymentBankTransfer
	default:
		return nil, &FieldError{Field: "payment_method", Reason: fmt.Sprintf("unsupported payment method %q", payment)}
	}

	if len(d.Items) == 0 {
		return nil, &FieldError{Field: "items", Reason: "at least one item is required"}
	}
	o.Items = make([]OrderItem, len(d.Items))
	for i, it := range d.Items {
		item, err := buildItem(i, it)
		if err != nil {
			return nil, err
		}
		o.Items[i] = item
	}

	if d.IssueDate == "" {
		o.IssueDate = today
	} else {
		issue, err := ParseDate(d.IssueDate)
		if err != nil {
			return nil, &FieldError{Field: "issue_date", Reason: fmt.Sprintf("invalid date %q", d.IssueDate)}
		}
		o.IssueDate = issue
	}
	if d.DueDate != "" {
		due, err := ParseDate(d.DueDate)
		if err != nil {
			return nil, &FieldError{Field: "due_date", Reason: fmt.Sprintf("invalid date %q", d.DueDate)}
		}
		o.DueDate = &due
	}

	if d.TaxRatePct == nil {
		o.TaxRatePct = defaultTaxRatePct
	} else {
		rate := *d.TaxRatePct
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return nil, &FieldError{Field: "tax_rate_pct", Reason: "tax rate must be between 0 and 100"}
		}
		o.TaxRatePct = rate
	}

	if d.ShippingFee == nil {
		o.ShippingFee = decimal.Zero
	} else {
		if err := checkAmount("shipping_fee", *d.ShippingFee, false); err != nil {
			return nil, err
		}
		o.ShippingFee = *d.ShippingFee
	}

	return o, nil
}

func buildParty(role string, p *PartyDraft) (Party, error) {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return Party{}, &FieldError{Field: role + ".name", Reason: "name is required"}
	}
	return Party{
		Name:    strings.TrimSpace(p.Name),
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
		TaxID:   p.TaxID,
	}, nil
}

func buildItem(index int, it ItemDraft) (OrderItem, error) {
	path := func(leaf string) string { return fmt.Sprintf("items[%d].%s", index, leaf) }
	item := OrderItem{
		SKU:  strings.TrimSpace(it.SKU),
		Name: strings.TrimSpace(it.Name),
		Qty:  it.Qty,
	}
	if item.SKU == "" {
		return OrderItem{}, &FieldError{Field: path("sku"), Reason: "sku is required"}
	}
	if item.Name == "" {
		return OrderItem{}, &FieldError{Field: path("name"), Reason: "name is required"}
	}
	if item.Qty <= 0 {
		return OrderItem{}, &FieldError{Field: path("qty"), Reason: "quantity must be a positive integer"}
	}
	if it.UnitPrice == nil {
		return OrderItem{}, &FieldError{Field: path("unit_price"), Reason: "unit price is required"}
	}
	if err := checkAmount(path("unit_price"), *it.UnitPrice, true); err != nil {
		return OrderItem{}, err
	}
	item.UnitPrice = *it.UnitPrice
	if it.Discount == nil {
		item.Discount = decimal.Zero
	} else {
		if err := checkAmount(path("discount"), *it.Discount, false); err != nil {
			return OrderItem{}, err
		}
		item.Discount = *it.Discount
	}
	return item, nil
}

// checkAmount enforces the money precision rules: at most 12 digits in
// total, at most 2 of them fractional.
func checkAmount(field string, d decimal.Decimal, requirePositive bool) error {
	if requirePositive && !d.IsPositive() {
		return &FieldError{Field: field, Reason: "amount must be greater than zero"}
	}
	if !requirePositive && d.IsNegative() {
		return &FieldError{Field: field, Reason: "amount must not be negative"}
	}
	if d.Exponent() < -2 && !d.Equal(d.Truncate(2)) {
		return &FieldError{Field: field, Reason: "amount must have at most 2 decimal places"}
	}
	if digitCount(d) > 12 {
		return &FieldError{Field: field, Reason: "amount must have at most 12 digits"}
	}
	return nil
}

func digitCount(d decimal.Decimal) int {
	s := d.Abs().Truncate(2).String()
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
