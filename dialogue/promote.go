package dialogue

import (
	"errors"
	"time"

	"github.com/mizuiro-dev/orderagent/schema"
)

// Status is the outcome of a promotion attempt.
type Status string

const (
	// StatusIncomplete means dialogue-required fields are still missing.
	StatusIncomplete Status = "incomplete"
	// StatusInvalid means the draft is dialogue-complete but violates a
	// strict order rule; Issue names the offending field.
	StatusInvalid Status = "invalid"
	// StatusDone means the draft was promoted into a strict order.
	StatusDone Status = "done"
)

// Result is the outcome of Promote. Exactly one of Missing, Issue or Order
// is populated, matching the status.
type Result struct {
	Status  Status
	Missing []string
	Issue   *schema.FieldError
	Order   *schema.Order
}

// Promote attempts to turn a complete draft into a validated strict order.
// The issue date defaults to now's date when the draft leaves it unset.
// Promotion is deterministic: two structurally equal drafts (with a pinned
// clock) always yield equal orders.
func Promote(d schema.OrderDraft, now func() time.Time) Result {
	if missing := CalcMissing(d); len(missing) > 0 {
		return Result{Status: StatusIncomplete, Missing: missing}
	}
	order, err := schema.BuildOrder(d, schema.NewDate(now()))
	if err != nil {
		var fieldErr *schema.FieldError
		if !errors.As(err, &fieldErr) {
			fieldErr = &schema.FieldError{Field: "", Reason: err.Error()}
		}
		return Result{Status: StatusInvalid, Issue: fieldErr}
	}
	return Result{Status: StatusDone, Order: order}
}

// ToOrderIfComplete is the two-valued view of Promote: it reports whether
// the draft promoted cleanly and, if so, the resulting order. Both the
// incomplete and invalid outcomes collapse to false.
func ToOrderIfComplete(d schema.OrderDraft, now func() time.Time) (bool, *schema.Order) {
	res := Promote(d, now)
	if res.Status != StatusDone {
		return false, nil
	}
	return true, res.Order
}
