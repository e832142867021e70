package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mizuiro-dev/orderagent/schema"
)

// Parser extracts an order draft from free-form request text. The chat
// client is injected at construction; the parser holds no hidden global
// handles.
type Parser struct {
	client          ChatClient
	systemPrompt    string
	fallbackPrompt  string
	disableFallback bool
	logger          *slog.Logger
}

type ParserOption func(*Parser)

// WithoutFallback disables the second, no-hint model call on extraction
// failure.
func WithoutFallback() ParserOption {
	return func(p *Parser) { p.disableFallback = true }
}

func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) { p.logger = logger }
}

func NewParser(client ChatClient, opts ...ParserOption) (*Parser, error) {
	withHint, withoutHint, err := buildSystemPrompts()
	if err != nil {
		return nil, err
	}
	p := &Parser{
		client:         client,
		systemPrompt:   withHint,
		fallbackPrompt: withoutHint,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse asks the model to convert the request text into a draft-shaped
// JSON object, then routes the answer through JSONObject and DecodeDraft —
// the model's output shape is never trusted directly. When the first
// attempt yields no parseable object, one fallback reattempt is made
// without the JSON-only response hint; any failure after that is fatal for
// the turn.
func (p *Parser) Parse(ctx context.Context, text string) (schema.OrderDraft, error) {
	user := buildUserPrompt(text)

	raw, err := p.client.Complete(ctx, p.systemPrompt, user)
	var data []byte
	if err == nil {
		data, err = JSONObject(raw)
	}
	if err != nil && !p.disableFallback {
		p.logger.Warn("extraction attempt failed, retrying without JSON-only hint", "error", err)
		raw, retryErr := p.client.Complete(ctx, p.fallbackPrompt, user)
		if retryErr != nil {
			return schema.OrderDraft{}, fmt.Errorf("extract draft: %w", retryErr)
		}
		data, err = JSONObject(raw)
	}
	if err != nil {
		return schema.OrderDraft{}, fmt.Errorf("extract draft: %w", err)
	}

	return schema.DecodeDraft(data)
}
