package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hrdocs/internal/domain/documents"
)

const keyPrefix = "hrdocs:session:"

func Key(token string) string {
	return keyPrefix + token
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Connect opens a client for addr and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, req documents.Request) error {
	if !validToken(token) {
		return ErrInvalidToken
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, Key(token), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, token string) (documents.Request, error) {
	if !validToken(token) {
		return documents.Request{}, ErrInvalidToken
	}
	payload, err := s.rdb.Get(ctx, Key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return documents.Request{}, ErrSessionNotFound
	}
	if err != nil {
		return documents.Request{}, fmt.Errorf("load session: %w", err)
	}
	var req documents.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return documents.Request{}, fmt.Errorf("decode session: %w", err)
	}
	return req, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, Key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
