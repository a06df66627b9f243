// Package redissessionrepo stores session entries in a single Redis hash so
// several client processes can share one login.
package redissessionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-mall-client/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Repo = (*RedisSessionRepo)(nil)

const (
	defaultKeyPrefix = "mall:"
	opTimeout        = 5 * time.Second
)

type RedisSessionRepo struct {
	client *redis.Client
	key    string
}

// NewRedisSessionRepo connects to redisURL and verifies the connection
func NewRedisSessionRepo(redisURL, keyPrefix string) (*RedisSessionRepo, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSessionRepoWithClient(client, keyPrefix), nil
}

// NewRedisSessionRepoWithClient wraps an existing client
func NewRedisSessionRepoWithClient(client *redis.Client, keyPrefix string) *RedisSessionRepo {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisSessionRepo{
		client: client,
		key:    keyPrefix + "session",
	}
}

func (rr *RedisSessionRepo) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	value, err := rr.client.HGet(ctx, rr.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session field %s: %w", key, err)
	}
	return value, true, nil
}

func (rr *RedisSessionRepo) SetAll(entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	hashData := make(map[string]interface{}, len(entries))
	for k, v := range entries {
		hashData[k] = v
	}
	if err := rr.client.HSet(ctx, rr.key, hashData).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (rr *RedisSessionRepo) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := rr.client.HDel(ctx, rr.key, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close releases the underlying client
func (rr *RedisSessionRepo) Close() error {
	return rr.client.Close()
}
