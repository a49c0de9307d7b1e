package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client     *redisv9.Client
	prefix     string
	userPrefix string
}

func NewRedisStore(client *redisv9.Client) *RedisStore {
	return &RedisStore{
		client:     client,
		prefix:     "notes:session:",
		userPrefix: "notes:user_sessions:",
	}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session failed: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if data.Username == "" {
		if err := s.client.Set(ctx, s.key(id), payload, ttl).Err(); err != nil {
			return fmt.Errorf("redis set session failed: %w", err)
		}
		return nil
	}

	userKey := s.userKey(data.Username)
	_, err = s.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		pipe.Set(ctx, s.key(id), payload, ttl)
		pipe.SAdd(ctx, userKey, id)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

// DeleteByUsername removes the sessions indexed under username. Index entries
// may name sessions that already expired; deleting those is a no-op.
func (s *RedisStore) DeleteByUsername(ctx context.Context, username string) error {
	userKey := s.userKey(username)
	ids, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis list user sessions failed: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, userKey)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete user sessions failed: %w", err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) userKey(username string) string {
	return s.userPrefix + username
}
