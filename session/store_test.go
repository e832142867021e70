package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuiro-dev/orderagent/dialogue"
	"github.com/mizuiro-dev/orderagent/schema"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := WithSessionID(context.Background(), NewSessionID())

	state, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Field)

	want := &State{
		Draft: schema.OrderDraft{Buyer: &schema.PartyDraft{Name: "ABC Corp"}},
		Field: dialogue.FieldItemQty,
	}
	require.NoError(t, store.Write(ctx, want))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Remove(ctx))
	state, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.Draft.Buyer)
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	store := NewMemoryStore()
	first := WithSessionID(context.Background(), NewSessionID())
	second := WithSessionID(context.Background(), NewSessionID())

	require.NoError(t, store.Write(first, &State{Field: dialogue.FieldCurrency}))

	state, err := store.Read(second)
	require.NoError(t, err)
	assert.Empty(t, state.Field)
}

func TestSessionIDContextRoundTrip(t *testing.T) {
	id := NewSessionID()
	assert.NotEmpty(t, id)
	assert.NotEqual(t, id, NewSessionID())

	ctx := WithSessionID(context.Background(), id)
	got, ok := SessionIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = SessionIDFromContext(context.Background())
	assert.False(t, ok)
}
