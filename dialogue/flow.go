package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mizuiro-dev/orderagent/schema"
)

// Extractor turns free-form request text into a draft. Implemented by
// extract.Parser; failures are fatal for the turn.
type Extractor interface {
	Parse(ctx context.Context, text string) (schema.OrderDraft, error)
}

// TurnStatus is the outward status of one dialogue turn.
type TurnStatus string

const (
	TurnAsk  TurnStatus = "ask"
	TurnDone TurnStatus = "done"
)

// Turn is the result of Start or Reply. On "ask", Field names the next
// field to answer, Question is its prompt and Draft is the state the
// caller must carry into Reply. On "done", Order is the promoted order.
// Issue, when set, is the developer-side diagnostic behind a defensive
// re-ask; it is never meant for the end user.
type Turn struct {
	Status   TurnStatus         `json:"status"`
	Question string             `json:"question,omitempty"`
	Field    string             `json:"field,omitempty"`
	Draft    schema.OrderDraft  `json:"draft"`
	Order    *schema.Order      `json:"order,omitempty"`
	Issue    *schema.FieldError `json:"issue,omitempty"`
}

// Flow drives the slot-filling dialogue: extract once, then ask one
// question per missing field until the draft promotes. The flow itself is
// stateless between turns; the draft inside each Turn is the only carried
// state.
type Flow struct {
	extractor Extractor
	now       func() time.Time
	logger    *slog.Logger
}

type FlowOption func(*Flow)

// WithClock overrides the clock used for the issue-date default.
func WithClock(now func() time.Time) FlowOption {
	return func(f *Flow) { f.now = now }
}

// WithLogger overrides the logger used for turn diagnostics.
func WithLogger(logger *slog.Logger) FlowOption {
	return func(f *Flow) { f.logger = logger }
}

func NewFlow(extractor Extractor, opts ...FlowOption) *Flow {
	f := &Flow{
		extractor: extractor,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start begins a dialogue from raw request text. Extraction failure is
// fatal for the turn; the caller must restart the request.
func (f *Flow) Start(ctx context.Context, text string) (*Turn, error) {
	draft, err := f.extractor.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("start dialogue: %w", err)
	}
	return f.resolve(draft), nil
}

// Restart re-extracts from fresh request text and merges the result over
// an existing draft, so answers already collected survive.
func (f *Flow) Restart(ctx context.Context, base schema.OrderDraft, text string) (*Turn, error) {
	extracted, err := f.extractor.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("restart dialogue: %w", err)
	}
	merged, err := schema.MergeDrafts(base, extracted)
	if err != nil {
		return nil, fmt.Errorf("restart dialogue: %w", err)
	}
	return f.resolve(merged), nil
}

// Reply applies one answer for the declared field and resolves the next
// turn. Unparseable answers leave the field unset, so the same question
// comes back.
func (f *Flow) Reply(ctx context.Context, draft schema.OrderDraft, field, answer string) (*Turn, error) {
	next := ApplyAnswer(draft, field, answer)
	return f.resolve(next), nil
}

func (f *Flow) resolve(draft schema.OrderDraft) *Turn {
	res := Promote(draft, f.now)
	switch res.Status {
	case StatusDone:
		f.logger.Debug("draft promoted", "items", len(res.Order.Items), "currency", res.Order.Currency)
		return &Turn{Status: TurnDone, Order: res.Order}
	case StatusInvalid:
		// The stored answer is invalid rather than missing. Outwardly this
		// is another ask for the offending field; the root cause stays in
		// the diagnostic.
		field := res.Issue.Field
		if field == "" {
			field = FieldItemName
		}
		f.logger.Warn("draft failed strict validation", "field", field, "reason", res.Issue.Reason)
		return &Turn{
			Status:   TurnAsk,
			Question: NextQuestion(field),
			Field:    field,
			Draft:    draft,
			Issue:    res.Issue,
		}
	default:
		field := res.Missing[0]
		f.logger.Debug("asking next field", "field", field, "missing", len(res.Missing))
		return &Turn{
			Status:   TurnAsk,
			Question: NextQuestion(field),
			Field:    field,
			Draft:    draft,
		}
	}
}
