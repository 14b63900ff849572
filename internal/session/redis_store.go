package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// DefaultRedisPrefix namespaces draft keys.
const DefaultRedisPrefix = "portal:draft:"

// RedisStore keeps drafts as JSON under prefix+id. Every save renews the TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id string) (flow.Draft, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return flow.Draft{}, false, nil
	}
	if err != nil {
		return flow.Draft{}, false, fmt.Errorf("%w: get %s: %v", ErrStore, id, err)
	}

	var d flow.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return flow.Draft{}, false, fmt.Errorf("%w: decode %s: %v", ErrStore, id, err)
	}
	return d, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, d flow.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStore, id, err)
	}
	if err := s.client.Set(ctx, s.prefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, id, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrStore, id, err)
	}
	return nil
}

// Ping checks the connection; used at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
