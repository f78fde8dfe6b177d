package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cereza/orderdesk/internal/core/ports"
)

const keyPrefix = "orderdesk:visitor:"

// VisitorStore implements ports.VisitorStore with one JSON value per visitor.
// Every Save refreshes the TTL so an idle visitor's cart eventually expires.
type VisitorStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewVisitorStore(client redis.Cmdable, ttl time.Duration) *VisitorStore {
	return &VisitorStore{client: client, ttl: ttl}
}

func (s *VisitorStore) Load(ctx context.Context, visitorID string) (ports.VisitorState, error) {
	raw, err := s.client.Get(ctx, key(visitorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.VisitorState{}, nil
		}
		return ports.VisitorState{}, fmt.Errorf("visitor load: %w", err)
	}

	var state ports.VisitorState
	if err := json.Unmarshal(raw, &state); err != nil {
		return ports.VisitorState{}, fmt.Errorf("visitor decode: %w", err)
	}
	return state, nil
}

func (s *VisitorStore) Save(ctx context.Context, visitorID string, state ports.VisitorState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("visitor encode: %w", err)
	}
	if err := s.client.Set(ctx, key(visitorID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("visitor save: %w", err)
	}
	return nil
}

func (s *VisitorStore) Delete(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, key(visitorID)).Err(); err != nil {
		return fmt.Errorf("visitor delete: %w", err)
	}
	return nil
}

func key(visitorID string) string {
	return keyPrefix + visitorID
}
