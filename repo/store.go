package repo

import (
	"context"

	"ProposalBot/model"
)

// SessionStore persists conversation state between turns, keyed by a session
// identifier chosen by the host. Get returns model.ErrSessionNotFound when no
// session exists under the key.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*model.ConversationState, error)
	Set(ctx context.Context, sessionID string, state *model.ConversationState) error
	Delete(ctx context.Context, sessionID string) error
}
