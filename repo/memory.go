package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ProposalBot/model"
)

// MemoryStore keeps sessions in process memory. It serializes through JSON so
// it round-trips state exactly like the real backends, which makes it the
// store of choice for tests and the console host.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*model.ConversationState, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	var state model.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling session: %w", err)
	}
	return &state, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, state *model.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}
	s.mu.Lock()
	s.sessions[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
