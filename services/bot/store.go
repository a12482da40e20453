package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"glowdesk/models"
	"glowdesk/utils"

	"github.com/go-redis/redis/v8"
)

// Store holds in-flight booking conversations keyed by phone number.
// Implementations must return (nil, nil) from Get when no conversation exists.
type Store interface {
	Get(ctx context.Context, phone string) (*models.ConversationState, error)
	Set(ctx context.Context, state *models.ConversationState) error
	Delete(ctx context.Context, phone string) error
}

// RedisStore keeps conversation state in Redis with an idle TTL, so abandoned
// bookings expire instead of lingering, and multiple processes share state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a Redis client as a conversation store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: utils.ConversationTTL}
}

func conversationKey(phone string) string {
	return utils.ConversationKeyPrefix + phone
}

// Get loads the conversation for a phone number.
func (s *RedisStore) Get(ctx context.Context, phone string) (*models.ConversationState, error) {
	data, err := s.client.Get(ctx, conversationKey(phone)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load conversation for %s: %w", phone, err)
	}

	var state models.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to decode conversation for %s: %w", phone, err)
	}
	return &state, nil
}

// Set saves the conversation and refreshes its idle TTL.
func (s *RedisStore) Set(ctx context.Context, state *models.ConversationState) error {
	state.UpdatedAt = time.Now()
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode conversation for %s: %w", state.Phone, err)
	}
	if err := s.client.Set(ctx, conversationKey(state.Phone), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save conversation for %s: %w", state.Phone, err)
	}
	return nil
}

// Delete removes the conversation, ending the booking flow.
func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, conversationKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation for %s: %w", phone, err)
	}
	return nil
}
