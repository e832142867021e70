package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedCall struct {
	system string
	user   string
}

// scriptedClient replays canned responses and records every exchange.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     []scriptedCall
}

func (c *scriptedClient) Complete(ctx context.Context, system, user string) (string, error) {
	i := len(c.calls)
	c.calls = append(c.calls, scriptedCall{system: system, user: user})
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	var resp string
	if i < len(c.responses) {
		resp = c.responses[i]
	}
	return resp, err
}

func newTestParser(t *testing.T, client ChatClient, opts ...ParserOption) *Parser {
	t.Helper()
	opts = append(opts, WithParserLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	parser, err := NewParser(client, opts...)
	require.NoError(t, err)
	return parser
}

const draftJSON = `{"buyer": {"name": "ABC Corp"}, "items": [{"name": "Widget", "qty": 3}]}`

func TestParserParsesFirstAttempt(t *testing.T) {
	client := &scriptedClient{responses: []string{"結果です: " + draftJSON + " 以上"}}
	parser := newTestParser(t, client)

	draft, err := parser.Parse(context.Background(), "ABC Corpにウィジェットを3個")
	require.NoError(t, err)

	require.NotNil(t, draft.Buyer)
	assert.Equal(t, "ABC Corp", draft.Buyer.Name)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, 3, draft.Items[0].Qty)

	require.Len(t, client.calls, 1)
	assert.Contains(t, client.calls[0].system, "出力は JSON のみ")
	assert.Contains(t, client.calls[0].system, "スキーマ")
	assert.Contains(t, client.calls[0].user, "ABC Corpにウィジェットを3個")
}

func TestParserFallsBackWithoutJSONOnlyHint(t *testing.T) {
	client := &scriptedClient{responses: []string{"JSONは生成できません", draftJSON}}
	parser := newTestParser(t, client)

	draft, err := parser.Parse(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, "ABC Corp", draft.Buyer.Name)

	require.Len(t, client.calls, 2)
	assert.Contains(t, client.calls[0].system, "出力は JSON のみ")
	assert.NotContains(t, client.calls[1].system, "出力は JSON のみ")
}

func TestParserFallsBackAfterClientError(t *testing.T) {
	client := &scriptedClient{
		responses: []string{"", draftJSON},
		errs:      []error{errors.New("rate limited"), nil},
	}
	parser := newTestParser(t, client)

	draft, err := parser.Parse(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, "ABC Corp", draft.Buyer.Name)
	assert.Len(t, client.calls, 2)
}

func TestParserFailsWhenBothAttemptsYieldNoJSON(t *testing.T) {
	client := &scriptedClient{responses: []string{"no json", "still no json"}}
	parser := newTestParser(t, client)

	_, err := parser.Parse(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrNoJSONObject)
	assert.Len(t, client.calls, 2)
}

func TestParserWithoutFallbackStopsAfterOneCall(t *testing.T) {
	client := &scriptedClient{responses: []string{"no json"}}
	parser := newTestParser(t, client, WithoutFallback())

	_, err := parser.Parse(context.Background(), "whatever")
	assert.ErrorIs(t, err, ErrNoJSONObject)
	assert.Len(t, client.calls, 1)
}

func TestParserRejectsWrongDraftShape(t *testing.T) {
	client := &scriptedClient{responses: []string{`{"items": 5}`}}
	parser := newTestParser(t, client)

	_, err := parser.Parse(context.Background(), "whatever")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decode draft"))
	// The shape error comes after successful extraction; no fallback fires.
	assert.Len(t, client.calls, 1)
}
