package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ProposalBot/model"

	"github.com/redis/go-redis/v9"
)

// sessionTTL expires abandoned sessions so the store self-cleans.
const sessionTTL = 7 * 24 * time.Hour

// RedisStore stores conversation sessions as JSON values in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store backed by Redis.
func NewRedisStore(addr string, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session: %w", err)
	}
	var state model.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling session: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, state *model.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("error writing session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
