package repo

import (
	"context"
	"testing"

	"ProposalBot/model"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, model.ErrSessionNotFound)

	state := &model.ConversationState{
		SessionID:   "abc",
		CurrentStep: model.StepRoomNeeds,
		FormData: model.FormData{
			EventName:     "Offsite",
			AttendeeCount: 12,
		},
		Messages: []model.Message{
			{ID: "m1", Author: model.AuthorBot, Content: "How many rooms?", InputHint: model.InputNumber},
		},
	}
	require.NoError(t, store.Set(ctx, "abc", state))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, state.CurrentStep, got.CurrentStep)
	require.Equal(t, state.FormData, got.FormData)
	require.Equal(t, state.Messages, got.Messages)

	// The store must hold a snapshot, not an alias of the caller's state.
	state.FormData.EventName = "changed"
	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "Offsite", got.FormData.EventName)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	require.ErrorIs(t, err, model.ErrSessionNotFound)

	// Deleting a missing session is not an error.
	require.NoError(t, store.Delete(ctx, "abc"))
}
